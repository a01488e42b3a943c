package http

import (
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/harsach/newsportal/internal/auth"
	"github.com/harsach/newsportal/internal/post/model"
	"github.com/harsach/newsportal/internal/post/service"
)

type Handler struct {
	svc service.PostService
	log zerolog.Logger
}

func New(svc service.PostService, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type createPostRequest struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Thumbnail   string     `json:"thumbnail"`
	Category    string     `json:"category"`
	SubCategory string     `json:"sub_category"`
	Type        model.Type `json:"type"`
	Location    string     `json:"location"`
	Tags        []string   `json:"tags"`
	Salary      string     `json:"salary"`
	Company     string     `json:"company"`
	LastDate    string     `json:"last_date"`
}

func (h *Handler) CreatePost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	p := model.Post{
		Title:       req.Title,
		Content:     req.Content,
		Thumbnail:   req.Thumbnail,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Type:        req.Type,
		Location:    req.Location,
		Tags:        req.Tags,
		Salary:      req.Salary,
		Company:     req.Company,
		LastDate:    req.LastDate,
	}

	created, err := h.svc.Create(r.Context(), viewer.ID, viewer.Name, viewer.TrustLevel, p)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, stdhttp.StatusCreated, created)
}

func (h *Handler) GetFeed(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q := r.URL.Query()

	page := 1
	if v := q.Get("page"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "invalid page"})
			return
		}
		page = parsed
	}

	limit := 20
	if v := q.Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	f := model.Filter{
		Type:        model.Type(q.Get("type")),
		SubCategory: q.Get("sub_category"),
	}

	feed, err := h.svc.Feed(r.Context(), f, page, limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, stdhttp.StatusOK, feed)
}

func (h *Handler) GetPost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	p, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, stdhttp.StatusOK, p)
}

func (h *Handler) ReportPost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())

	p, err := h.svc.Report(r.Context(), r.PathValue("id"), viewer.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, stdhttp.StatusOK, p)
}

func (h *Handler) ApprovePost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	p, err := h.svc.Approve(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, stdhttp.StatusOK, p)
}

type rejectPostRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) RejectPost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	var req rejectPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	p, err := h.svc.Reject(r.Context(), r.PathValue("id"), req.Reason)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, stdhttp.StatusOK, p)
}

func (h *Handler) PendingPosts(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	items, err := h.svc.Pending(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, stdhttp.StatusOK, map[string]any{"items": items})
}

func (h *Handler) ReportedPosts(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	items, err := h.svc.Reported(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, stdhttp.StatusOK, map[string]any{"items": items})
}

func (h *Handler) AdminStats(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, stdhttp.StatusOK, stats)
}

func (h *Handler) SeedFeed(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	added, err := h.svc.Seed(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, stdhttp.StatusOK, map[string]any{"added": added})
}

func (h *Handler) writeServiceError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		writeJSON(w, stdhttp.StatusUnauthorized, map[string]any{"error": "sign in required"})
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "invalid input"})
	case errors.Is(err, service.ErrNotFound):
		h.log.Warn().Str("path", r.URL.Path).Msg("post not found")
		writeJSON(w, stdhttp.StatusNotFound, map[string]any{"error": "not found"})
	case errors.Is(err, service.ErrInvalidTransition):
		writeJSON(w, stdhttp.StatusConflict, map[string]any{"error": "post is no longer pending"})
	default:
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("post handler failure")
		writeJSON(w, stdhttp.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}

func writeJSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
