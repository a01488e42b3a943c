package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harsach/newsportal/internal/notification/model"
)

func TestPushAndList(t *testing.T) {
	ctx := context.Background()
	svc := New()

	svc.Push("u1", model.Notification{Type: model.TypeSystem, Title: "older"})
	svc.Push("u1", model.Notification{Type: model.TypeSystem, Title: "newer"})
	svc.Push("", model.Notification{Title: "dropped"})

	items := svc.List(ctx, "u1")
	require.Len(t, items, 2)
	// newest first
	assert.Equal(t, "newer", items[0].Title)
	assert.Equal(t, "older", items[1].Title)
	assert.NotEmpty(t, items[0].ID)
	assert.False(t, items[0].CreatedAt.IsZero())

	assert.Empty(t, svc.List(ctx, "u2"))
}

func TestUnreadAndMarkAllRead(t *testing.T) {
	ctx := context.Background()
	svc := New()

	svc.Push("u1", model.Notification{Title: "a"})
	svc.Push("u1", model.Notification{Title: "b"})
	assert.Equal(t, 2, svc.UnreadCount(ctx, "u1"))

	svc.MarkAllRead(ctx, "u1")
	assert.Equal(t, 0, svc.UnreadCount(ctx, "u1"))
	for _, n := range svc.List(ctx, "u1") {
		assert.True(t, n.IsRead)
	}
}

func TestEventHooks(t *testing.T) {
	ctx := context.Background()
	svc := New()

	svc.ReplyPosted("u1", "p1", "Ravi")
	svc.PostApproved("u1", "p2", "Metro opens")
	svc.PostRejected("u1", "p3", "Old rumor", "unverifiable")
	svc.PostRejected("u1", "p4", "Stale tip", "")

	items := svc.List(ctx, "u1")
	require.Len(t, items, 4)

	// newest first: p4 rejection, p3 rejection, approval, reply
	assert.Equal(t, `"Stale tip" was rejected`, items[0].Message)
	assert.Equal(t, `"Old rumor" was rejected: unverifiable`, items[1].Message)
	assert.Equal(t, model.TypePost, items[2].Type)
	assert.Equal(t, "p2", items[2].TargetID)
	assert.Equal(t, model.TypeReply, items[3].Type)
	assert.Equal(t, "Ravi replied to your comment", items[3].Message)
}
