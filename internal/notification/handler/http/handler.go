package http

import (
	"encoding/json"
	stdhttp "net/http"

	"github.com/harsach/newsportal/internal/auth"
	"github.com/harsach/newsportal/internal/notification/service"
)

type Handler struct {
	svc *service.NotificationService
}

func New(svc *service.NotificationService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(mux *stdhttp.ServeMux) {
	mux.HandleFunc("GET /notifications", auth.Require(h.List))
	mux.HandleFunc("POST /notifications/read-all", auth.Require(h.MarkAllRead))
}

func (h *Handler) List(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())
	writeJSON(w, stdhttp.StatusOK, map[string]any{
		"items":  h.svc.List(r.Context(), viewer.ID),
		"unread": h.svc.UnreadCount(r.Context(), viewer.ID),
	})
}

func (h *Handler) MarkAllRead(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())
	h.svc.MarkAllRead(r.Context(), viewer.ID)
	writeJSON(w, stdhttp.StatusOK, map[string]any{"result": "ok"})
}

func writeJSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
