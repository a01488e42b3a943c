// Package service keeps per-user notification inboxes in process memory and
// implements the event hooks the comment and post services publish into.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harsach/newsportal/internal/notification/model"
)

type NotificationService struct {
	mu     sync.RWMutex
	byUser map[string][]model.Notification // newest first
}

func New() *NotificationService {
	return &NotificationService{byUser: make(map[string][]model.Notification)}
}

func (s *NotificationService) Push(userID string, n model.Notification) {
	if userID == "" {
		return
	}
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = append([]model.Notification{n}, s.byUser[userID]...)
}

func (s *NotificationService) List(ctx context.Context, userID string) []model.Notification {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Notification(nil), s.byUser[userID]...)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) int {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.byUser[userID] {
		if !n.IsRead {
			count++
		}
	}
	return count
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.byUser[userID]
	for i := range items {
		items[i].IsRead = true
	}
}

// ReplyPosted satisfies the comment service's notifier hook.
func (s *NotificationService) ReplyPosted(userID, postID, fromName string) {
	s.Push(userID, model.Notification{
		Type:     model.TypeReply,
		Title:    "New reply",
		Message:  fmt.Sprintf("%s replied to your comment", fromName),
		TargetID: postID,
	})
}

// PostApproved satisfies the post service's notifier hook.
func (s *NotificationService) PostApproved(userID, postID, title string) {
	s.Push(userID, model.Notification{
		Type:     model.TypePost,
		Title:    "Post approved",
		Message:  fmt.Sprintf("%q is now live", title),
		TargetID: postID,
	})
}

// PostRejected satisfies the post service's notifier hook.
func (s *NotificationService) PostRejected(userID, postID, title, reason string) {
	msg := fmt.Sprintf("%q was rejected", title)
	if reason != "" {
		msg = fmt.Sprintf("%q was rejected: %s", title, reason)
	}
	s.Push(userID, model.Notification{
		Type:     model.TypeSystem,
		Title:    "Post rejected",
		Message:  msg,
		TargetID: postID,
	})
}
