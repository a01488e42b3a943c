// Package service is the in-memory chat inbox plus the AI assistant bridge.
// Sessions pair exactly two participants; messages are kept per session with
// a simple sent/seen flag that drives unread counts.
package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harsach/newsportal/internal/chat/model"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("chat not found")
	ErrForbidden    = errors.New("not a participant")
)

// assistantFallback is returned verbatim when the hosted model cannot be
// reached, so the inbox never surfaces an error bubble.
const assistantFallback = "Maaf kijiye, hum abhi connect nahi kar pa rahe hain."

const maxMessageLen = 4000

// Assistant produces the model-backed reply for the assistant chat.
type Assistant interface {
	Chat(ctx context.Context, userMessage string) (string, error)
}

type session struct {
	id           string
	participants []model.Participant
	messages     []model.Message
}

type ChatService struct {
	mu        sync.RWMutex
	sessions  map[string]*session
	assistant Assistant
	log       zerolog.Logger
}

func New(assistant Assistant, log zerolog.Logger) *ChatService {
	return &ChatService{
		sessions:  make(map[string]*session),
		assistant: assistant,
		log:       log,
	}
}

// Open returns the session between the two participants, creating it on
// first contact.
func (s *ChatService) Open(ctx context.Context, a, b model.Participant) (model.Session, error) {
	_ = ctx
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		return model.Session{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess := s.findLocked(a.ID, b.ID); sess != nil {
		return s.viewLocked(sess, a.ID), nil
	}

	sess := &session{
		id:           uuid.NewString(),
		participants: []model.Participant{a, b},
	}
	s.sessions[sess.id] = sess
	return s.viewLocked(sess, a.ID), nil
}

func (s *ChatService) findLocked(aID, bID string) *session {
	for _, sess := range s.sessions {
		ids := map[string]bool{}
		for _, p := range sess.participants {
			ids[p.ID] = true
		}
		if ids[aID] && ids[bID] {
			return sess
		}
	}
	return nil
}

func (s *ChatService) Send(ctx context.Context, chatID, senderID, text string, typ model.MessageType) (model.Message, error) {
	_ = ctx
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxMessageLen {
		return model.Message{}, ErrInvalidInput
	}
	if typ == "" {
		typ = model.MessageText
	}
	if !typ.Valid() {
		return model.Message{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return model.Message{}, ErrNotFound
	}
	if !s.isParticipantLocked(sess, senderID) {
		return model.Message{}, ErrForbidden
	}

	msg := model.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		SenderID:  senderID,
		Text:      text,
		Type:      typ,
		Status:    model.MessageSent,
		CreatedAt: time.Now().UTC(),
	}
	sess.messages = append(sess.messages, msg)
	return msg, nil
}

// Sessions lists the viewer's inbox, most recently active first.
func (s *ChatService) Sessions(ctx context.Context, userID string) []model.Session {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Session
	for _, sess := range s.sessions {
		if !s.isParticipantLocked(sess, userID) {
			continue
		}
		out = append(out, s.viewLocked(sess, userID))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].LastAt.After(out[j].LastAt) })
	return out
}

// Messages returns the session transcript and marks the other side's
// messages seen.
func (s *ChatService) Messages(ctx context.Context, chatID, userID string) ([]model.Message, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.isParticipantLocked(sess, userID) {
		return nil, ErrForbidden
	}

	for i := range sess.messages {
		if sess.messages[i].SenderID != userID {
			sess.messages[i].Status = model.MessageSeen
		}
	}
	return append([]model.Message(nil), sess.messages...), nil
}

// Ask routes a message to the assistant and returns the reply. The fallback
// reply stands in whenever the model call fails.
func (s *ChatService) Ask(ctx context.Context, userID, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrInvalidInput
	}
	if s.assistant == nil {
		return assistantFallback, nil
	}

	reply, err := s.assistant.Chat(ctx, text)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("assistant unavailable")
		return assistantFallback, nil
	}
	return reply, nil
}

func (s *ChatService) isParticipantLocked(sess *session, userID string) bool {
	for _, p := range sess.participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

func (s *ChatService) viewLocked(sess *session, viewerID string) model.Session {
	view := model.Session{
		ID:           sess.id,
		Participants: append([]model.Participant(nil), sess.participants...),
	}
	if n := len(sess.messages); n > 0 {
		last := sess.messages[n-1]
		view.LastMessage = last.Text
		view.LastAt = last.CreatedAt
	}
	for _, m := range sess.messages {
		if m.SenderID != viewerID && m.Status == model.MessageSent {
			view.UnreadCount++
		}
	}
	return view
}
