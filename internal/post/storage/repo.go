package storage

import (
	"context"
	"errors"

	"github.com/harsach/newsportal/internal/post/model"
)

var ErrNotFound = errors.New("post storage: not found")

type Repository interface {
	Create(ctx context.Context, p model.Post) (model.Post, error)
	Get(ctx context.Context, id string) (model.Post, error)

	// Feed pages approved posts newest-first under the filter.
	Feed(ctx context.Context, f model.Filter, page, limit int) (model.FeedPage, error)

	SetStatus(ctx context.Context, id string, st model.Status, reason string) (model.Post, error)
	SetVerification(ctx context.Context, id string, risk model.Risk, score float64, reason string) error
	IncrementViews(ctx context.Context, id string) (model.Post, error)
	IncrementReports(ctx context.Context, id string) (model.Post, error)

	Pending(ctx context.Context) ([]model.Post, error)
	Reported(ctx context.Context) ([]model.Post, error)
	Stats(ctx context.Context) (model.AdminStats, error)
}
