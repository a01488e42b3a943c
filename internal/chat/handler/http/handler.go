package http

import (
	"encoding/json"
	"errors"
	stdhttp "net/http"

	"github.com/rs/zerolog"

	"github.com/harsach/newsportal/internal/auth"
	"github.com/harsach/newsportal/internal/chat/model"
	"github.com/harsach/newsportal/internal/chat/service"
	usersvc "github.com/harsach/newsportal/internal/user/service"
)

type Handler struct {
	svc   *service.ChatService
	users *usersvc.UserService
	log   zerolog.Logger
}

func New(svc *service.ChatService, users *usersvc.UserService, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, users: users, log: log}
}

func (h *Handler) Register(mux *stdhttp.ServeMux) {
	mux.HandleFunc("POST /chats", auth.Require(h.OpenChat))
	mux.HandleFunc("GET /chats", auth.Require(h.ListChats))
	mux.HandleFunc("GET /chats/{id}/messages", auth.Require(h.ListMessages))
	mux.HandleFunc("POST /chats/{id}/messages", auth.Require(h.SendMessage))
	mux.HandleFunc("POST /assistant", auth.Require(h.AskAssistant))
}

type openChatRequest struct {
	UserID string `json:"user_id"`
}

func (h *Handler) OpenChat(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())

	var req openChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	other, err := h.users.Get(r.Context(), req.UserID)
	if err != nil {
		writeJSON(w, stdhttp.StatusNotFound, map[string]any{"error": "user not found"})
		return
	}

	sess, err := h.svc.Open(r.Context(),
		model.Participant{ID: viewer.ID, Name: viewer.Name, Avatar: viewer.Avatar, TrustLevel: viewer.TrustLevel},
		model.Participant{ID: other.ID, Name: other.Name, Avatar: other.Avatar, TrustLevel: other.TrustLevel},
	)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, stdhttp.StatusOK, sess)
}

func (h *Handler) ListChats(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())
	writeJSON(w, stdhttp.StatusOK, map[string]any{"items": h.svc.Sessions(r.Context(), viewer.ID)})
}

func (h *Handler) ListMessages(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())

	msgs, err := h.svc.Messages(r.Context(), r.PathValue("id"), viewer.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, stdhttp.StatusOK, map[string]any{"items": msgs})
}

type sendMessageRequest struct {
	Text string            `json:"text"`
	Type model.MessageType `json:"type"`
}

func (h *Handler) SendMessage(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	msg, err := h.svc.Send(r.Context(), r.PathValue("id"), viewer.ID, req.Text, req.Type)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, stdhttp.StatusCreated, msg)
}

type assistantRequest struct {
	Text string `json:"text"`
}

func (h *Handler) AskAssistant(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	viewer, _ := auth.Viewer(r.Context())

	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	reply, err := h.svc.Ask(r.Context(), viewer.ID, req.Text)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, stdhttp.StatusOK, map[string]any{"reply": reply})
}

func (h *Handler) writeServiceError(w stdhttp.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, stdhttp.StatusBadRequest, map[string]any{"error": "invalid input"})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, stdhttp.StatusNotFound, map[string]any{"error": "chat not found"})
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, stdhttp.StatusForbidden, map[string]any{"error": "not a participant"})
	default:
		h.log.Error().Err(err).Msg("chat handler failure")
		writeJSON(w, stdhttp.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}

func writeJSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
