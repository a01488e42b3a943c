package service

import (
	"context"

	"github.com/harsach/newsportal/internal/ai"
	"github.com/harsach/newsportal/internal/post/model"
)

type PostService interface {
	Create(ctx context.Context, authorID, authorName string, authorLevel int, p model.Post) (model.Post, error)
	Get(ctx context.Context, id string) (model.Post, error)
	Feed(ctx context.Context, f model.Filter, page, limit int) (model.FeedPage, error)
	Report(ctx context.Context, id, reporterID string) (model.Post, error)

	Approve(ctx context.Context, id string) (model.Post, error)
	Reject(ctx context.Context, id, reason string) (model.Post, error)
	Pending(ctx context.Context) ([]model.Post, error)
	Reported(ctx context.Context) ([]model.Post, error)
	Stats(ctx context.Context) (model.AdminStats, error)

	// Seed pulls externally summarized items and inserts them as approved
	// posts; returns how many were added.
	Seed(ctx context.Context) (int, error)
}

// Verifier is the advisory reliability check run on new submissions.
type Verifier interface {
	VerifyPost(ctx context.Context, title, content string) (ai.Verification, error)
}

// ContentSource supplies externally summarized feed items.
type ContentSource interface {
	FetchRecentContent(ctx context.Context) ([]ai.ContentItem, error)
}

// FeedCache caches rendered feed pages. Misses and failures are equivalent.
type FeedCache interface {
	GetFeed(ctx context.Context, key string) (model.FeedPage, bool)
	SetFeed(ctx context.Context, key string, page model.FeedPage)
	Invalidate(ctx context.Context)
}

// Notifier receives moderation outcomes for the author.
type Notifier interface {
	PostApproved(userID, postID, title string)
	PostRejected(userID, postID, title, reason string)
}

// AuthorStats mirrors submissions and moderation outcomes onto the author's
// profile counters.
type AuthorStats interface {
	RecordPost(ctx context.Context, authorID string)
	RecordPostOutcome(ctx context.Context, authorID string, approved bool)
}
