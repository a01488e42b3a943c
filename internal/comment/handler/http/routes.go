package http

import (
	stdhttp "net/http"

	"github.com/harsach/newsportal/internal/auth"
)

func (h *Handler) Register(mux *stdhttp.ServeMux) {
	mux.HandleFunc("GET /posts/{postID}/comments", h.GetComments)
	mux.HandleFunc("POST /posts/{postID}/comments", auth.Require(h.CreateComment))
	mux.HandleFunc("POST /posts/{postID}/comments/{id}/like", auth.Require(h.ToggleLike))
	mux.HandleFunc("POST /posts/{postID}/comments/{id}/report", auth.Require(h.ReportComment))

	mux.HandleFunc("PATCH /admin/posts/{postID}/comments/{id}/status", auth.RequireAdmin(h.SetStatus))
	mux.HandleFunc("GET /admin/comment-reports", auth.RequireAdmin(h.OpenReports))
	mux.HandleFunc("PATCH /admin/comment-reports/{id}", auth.RequireAdmin(h.ResolveReport))
}
