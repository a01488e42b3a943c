package storage

import (
	"context"
	"errors"

	"github.com/harsach/newsportal/internal/comment/model"
)

// ErrNotFound is returned when the target comment or report id does not exist
// in the forest.
var ErrNotFound = errors.New("comment storage: not found")

type Repository interface {
	Create(ctx context.Context, c model.Comment) (model.Comment, error)
	Exists(ctx context.Context, postID, id string) (bool, error)
	Get(ctx context.Context, postID, id string) (model.Comment, error)

	// Forest returns the full comment forest for a post as fresh values:
	// top-level comments newest-first, replies oldest-first. IsLiked is
	// derived for viewerID; an empty viewerID yields IsLiked=false
	// everywhere.
	Forest(ctx context.Context, postID, viewerID string) ([]model.CommentNode, error)
	Node(ctx context.Context, postID, id, viewerID string) (model.CommentNode, error)

	// ToggleLike flips membership of (id, viewerID) in the like relation and
	// returns the updated node.
	ToggleLike(ctx context.Context, postID, id, viewerID string) (model.CommentNode, error)
	SetStatus(ctx context.Context, postID, id string, st model.Status) (model.CommentNode, error)

	CreateReport(ctx context.Context, r model.Report) (model.Report, error)
	OpenReports(ctx context.Context) ([]model.Report, error)
	SetReportStatus(ctx context.Context, reportID string, st model.ReportStatus) (model.Report, error)
}
