// Package service holds users and their sessions. The portal keeps both in
// process memory: the original product had no account backend, sign-in is the
// mobile-number fast login.
package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harsach/newsportal/internal/user/model"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrBanned       = errors.New("user is banned")
	ErrNoSession    = errors.New("no such session")
)

type UserService struct {
	mu       sync.RWMutex
	byID     map[string]model.User
	byMobile map[string]string // mobile -> user id
	sessions map[string]string // token -> user id
}

func New() *UserService {
	return &UserService{
		byID:     make(map[string]model.User),
		byMobile: make(map[string]string),
		sessions: make(map[string]string),
	}
}

// Login registers the mobile number on first sight and opens a session.
func (s *UserService) Login(ctx context.Context, mobile, name string) (model.User, string, error) {
	_ = ctx

	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return model.User{}, "", ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, known := s.byMobile[mobile]
	if !known {
		u := model.User{
			ID:         uuid.NewString(),
			Name:       strings.TrimSpace(name),
			Mobile:     mobile,
			Type:       model.TypeCitizen,
			TrustLevel: model.TrustNew,
			TrustScore: 50,
			Role:       model.RoleUser,
			JoinedAt:   time.Now().UTC(),
		}
		if u.Name == "" {
			u.Name = "User " + mobile[len(mobile)-min(4, len(mobile)):]
		}
		s.byID[u.ID] = u
		s.byMobile[mobile] = u.ID
		id = u.ID
	}

	u := s.byID[id]
	if u.Banned {
		return model.User{}, "", ErrBanned
	}

	token := uuid.NewString()
	s.sessions[token] = id
	return u, token, nil
}

func (s *UserService) Logout(ctx context.Context, token string) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// ResolveSession maps a bearer token back to its user.
func (s *UserService) ResolveSession(ctx context.Context, token string) (model.User, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.sessions[token]
	if !ok {
		return model.User{}, ErrNoSession
	}
	u := s.byID[id]
	if u.Banned {
		return model.User{}, ErrBanned
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (model.User, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// Promote seeds an admin account, used at boot so the panel is reachable.
func (s *UserService) Promote(ctx context.Context, id string, role model.Role) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	s.byID[id] = u
	return nil
}

func (s *UserService) SetTrustLevel(ctx context.Context, id string, level int) (model.User, error) {
	_ = ctx
	if level < model.TrustNew || level > model.TrustEditor {
		return model.User{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	u.TrustLevel = level
	u.IsVerified = level >= model.TrustVerified
	s.byID[id] = u
	return u, nil
}

// Ban adds a strike and closes every open session of the user.
func (s *UserService) Ban(ctx context.Context, id string) (model.User, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	u.Banned = true
	u.Strikes++
	s.byID[id] = u

	for token, uid := range s.sessions {
		if uid == id {
			delete(s.sessions, token)
		}
	}
	return u, nil
}

// RecordPostOutcome updates the author's counters when a post passes or fails
// moderation.
func (s *UserService) RecordPostOutcome(ctx context.Context, authorID string, approved bool) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[authorID]
	if !ok {
		return
	}
	if approved {
		u.Stats.Approved++
		if u.TrustScore < 100 {
			u.TrustScore++
		}
	} else {
		u.Stats.Rejected++
		if u.TrustScore > 0 {
			u.TrustScore--
		}
	}
	s.byID[authorID] = u
}

// RecordPost bumps the author's posted counter on submission.
func (s *UserService) RecordPost(ctx context.Context, authorID string) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[authorID]
	if !ok {
		return
	}
	u.Stats.Posted++
	s.byID[authorID] = u
}
