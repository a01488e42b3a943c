package http

import (
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/harsach/newsportal/internal/auth"
	"github.com/harsach/newsportal/internal/user/service"
)

type Handler struct {
	svc *service.UserService
	log zerolog.Logger
}

func New(svc *service.UserService, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type loginRequest struct {
	Mobile string `json:"mobile"`
	Name   string `json:"name"`
}

func (h *Handler) Login(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	u, token, err := h.svc.Login(r.Context(), req.Mobile, req.Name)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, stdhttp.StatusOK, map[string]any{"user": u, "token": token})
}

func (h *Handler) Logout(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	hdr := r.Header.Get("Authorization")
	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) == 2 {
		h.svc.Logout(r.Context(), strings.TrimSpace(parts[1]))
	}
	writeJSON(w, stdhttp.StatusOK, map[string]any{"result": "ok"})
}

func (h *Handler) Me(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())
	writeJSON(w, stdhttp.StatusOK, viewer)
}

func (h *Handler) GetUser(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	u, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, stdhttp.StatusOK, u)
}

func (h *Handler) BanUser(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	u, err := h.svc.Ban(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.log.Info().Str("user_id", u.ID).Msg("user banned")
	writeJSON(w, stdhttp.StatusOK, u)
}

type setTrustRequest struct {
	Level int `json:"level"`
}

func (h *Handler) SetTrustLevel(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	var req setTrustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	u, err := h.svc.SetTrustLevel(r.Context(), r.PathValue("id"), req.Level)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, stdhttp.StatusOK, u)
}

func (h *Handler) writeServiceError(w stdhttp.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "invalid input"})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, stdhttp.StatusNotFound, map[string]any{"error": "user not found"})
	case errors.Is(err, service.ErrBanned):
		writeJSON(w, stdhttp.StatusForbidden, map[string]any{"error": "account banned"})
	default:
		h.log.Error().Err(err).Msg("user handler failure")
		writeJSON(w, stdhttp.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}

func writeJSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
