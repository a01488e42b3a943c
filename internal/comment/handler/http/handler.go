package http

import (
	"encoding/json"
	"errors"
	stdhttp "net/http"

	"github.com/rs/zerolog"

	"github.com/harsach/newsportal/internal/auth"
	"github.com/harsach/newsportal/internal/comment/model"
	"github.com/harsach/newsportal/internal/comment/service"
)

type Handler struct {
	svc service.CommentService
	log zerolog.Logger
}

func New(svc service.CommentService, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type createCommentRequest struct {
	Text     string `json:"text"`
	ParentID string `json:"parent_id"`
}

func (h *Handler) CreateComment(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	author := model.Author{
		ID:         viewer.ID,
		Name:       viewer.Name,
		Avatar:     viewer.Avatar,
		TrustLevel: viewer.TrustLevel,
	}

	n, err := h.svc.Add(r.Context(), r.PathValue("postID"), author, req.Text, req.ParentID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, stdhttp.StatusCreated, n)
}

func (h *Handler) GetComments(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())

	forest, err := h.svc.Forest(r.Context(), r.PathValue("postID"), viewer.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, stdhttp.StatusOK, map[string]any{"items": forest})
}

func (h *Handler) ToggleLike(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())

	n, err := h.svc.ToggleLike(r.Context(), r.PathValue("postID"), r.PathValue("id"), viewer.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, stdhttp.StatusOK, n)
}

type reportCommentRequest struct {
	Reason model.ReportReason `json:"reason"`
}

func (h *Handler) ReportComment(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())

	var req reportCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	rep, err := h.svc.Report(r.Context(), r.PathValue("postID"), r.PathValue("id"), viewer.ID, req.Reason)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, stdhttp.StatusCreated, rep)
}

type setStatusRequest struct {
	Status model.Status `json:"status"`
}

func (h *Handler) SetStatus(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	n, err := h.svc.SetStatus(r.Context(), r.PathValue("postID"), r.PathValue("id"), req.Status)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, stdhttp.StatusOK, n)
}

func (h *Handler) OpenReports(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	reports, err := h.svc.OpenReports(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, stdhttp.StatusOK, map[string]any{"items": reports})
}

type resolveReportRequest struct {
	Status model.ReportStatus `json:"status"`
}

func (h *Handler) ResolveReport(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	var req resolveReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	rep, err := h.svc.ResolveReport(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, stdhttp.StatusOK, rep)
}

func (h *Handler) writeServiceError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		writeJSON(w, stdhttp.StatusUnauthorized, map[string]any{"error": "sign in required"})
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "invalid input"})
	case errors.Is(err, service.ErrParentNotFound):
		h.log.Warn().Str("path", r.URL.Path).Msg("reply to unknown parent")
		writeJSON(w, stdhttp.StatusNotFound, map[string]any{"error": "parent not found"})
	case errors.Is(err, service.ErrNotFound):
		h.log.Warn().Str("path", r.URL.Path).Msg("comment not found")
		writeJSON(w, stdhttp.StatusNotFound, map[string]any{"error": "not found"})
	default:
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("comment handler failure")
		writeJSON(w, stdhttp.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}

func writeJSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
