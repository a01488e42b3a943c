package http

import (
	stdhttp "net/http"

	"github.com/harsach/newsportal/internal/auth"
)

func (h *Handler) Register(mux *stdhttp.ServeMux) {
	mux.HandleFunc("GET /posts", h.GetFeed)
	mux.HandleFunc("GET /posts/{id}", h.GetPost)
	mux.HandleFunc("POST /posts", auth.Require(h.CreatePost))
	mux.HandleFunc("POST /posts/{id}/report", auth.Require(h.ReportPost))

	mux.HandleFunc("POST /admin/posts/{id}/approve", auth.RequireAdmin(h.ApprovePost))
	mux.HandleFunc("POST /admin/posts/{id}/reject", auth.RequireAdmin(h.RejectPost))
	mux.HandleFunc("GET /admin/posts/pending", auth.RequireAdmin(h.PendingPosts))
	mux.HandleFunc("GET /admin/posts/reported", auth.RequireAdmin(h.ReportedPosts))
	mux.HandleFunc("GET /admin/stats", auth.RequireAdmin(h.AdminStats))
	mux.HandleFunc("POST /admin/feed/seed", auth.RequireAdmin(h.SeedFeed))
}
