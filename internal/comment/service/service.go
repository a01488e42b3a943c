package service

import (
	"context"

	"github.com/harsach/newsportal/internal/ai"
	"github.com/harsach/newsportal/internal/comment/model"
)

type CommentService interface {
	Add(ctx context.Context, postID string, author model.Author, text, parentID string) (model.CommentNode, error)
	Forest(ctx context.Context, postID, viewerID string) ([]model.CommentNode, error)
	ToggleLike(ctx context.Context, postID, commentID, viewerID string) (model.CommentNode, error)
	SetStatus(ctx context.Context, postID, commentID string, status model.Status) (model.CommentNode, error)
	Report(ctx context.Context, postID, commentID, reporterID string, reason model.ReportReason) (model.Report, error)
	OpenReports(ctx context.Context) ([]model.Report, error)
	ResolveReport(ctx context.Context, reportID string, status model.ReportStatus) (model.Report, error)
}

// Classifier is the advisory moderation hook. A nil classifier disables
// classification entirely; a failing one never blocks a comment.
type Classifier interface {
	ClassifyComment(ctx context.Context, text string) (ai.Classification, error)
}

// Notifier receives reply events so the parent comment's author can be told
// someone answered them.
type Notifier interface {
	ReplyPosted(userID, postID, fromName string)
}
