package http

import (
	stdhttp "net/http"

	"github.com/harsach/newsportal/internal/auth"
)

func (h *Handler) Register(mux *stdhttp.ServeMux) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/logout", auth.Require(h.Logout))
	mux.HandleFunc("GET /me", auth.Require(h.Me))
	mux.HandleFunc("GET /users/{id}", h.GetUser)

	mux.HandleFunc("POST /admin/users/{id}/ban", auth.RequireAdmin(h.BanUser))
	mux.HandleFunc("PATCH /admin/users/{id}/trust", auth.RequireAdmin(h.SetTrustLevel))
}
