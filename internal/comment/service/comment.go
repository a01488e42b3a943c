package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harsach/newsportal/internal/comment/model"
	"github.com/harsach/newsportal/internal/comment/storage"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrParentNotFound  = errors.New("parent not found")
)

const maxTextLen = 2000

type commentService struct {
	repo       storage.Repository
	classifier Classifier
	notifier   Notifier
	log        zerolog.Logger
}

func New(repo storage.Repository, classifier Classifier, notifier Notifier, log zerolog.Logger) CommentService {
	return &commentService{
		repo:       repo,
		classifier: classifier,
		notifier:   notifier,
		log:        log,
	}
}

func (s *commentService) Add(ctx context.Context, postID string, author model.Author, text, parentID string) (model.CommentNode, error) {
	if author.ID == "" {
		return model.CommentNode{}, ErrUnauthenticated
	}
	if postID == "" {
		return model.CommentNode{}, ErrInvalidInput
	}
	if err := validateText(text); err != nil {
		return model.CommentNode{}, err
	}

	var parentAuthor model.Author
	if parentID != "" {
		parent, err := s.repo.Get(ctx, postID, parentID)
		if errors.Is(err, storage.ErrNotFound) {
			return model.CommentNode{}, ErrParentNotFound
		}
		if err != nil {
			return model.CommentNode{}, err
		}
		parentAuthor = parent.Author
	}

	c := model.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		Author:    author,
		Text:      strings.TrimSpace(text),
		ParentID:  parentID,
		Status:    model.StatusActive,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, c)
	if errors.Is(err, storage.ErrNotFound) {
		return model.CommentNode{}, ErrParentNotFound
	}
	if err != nil {
		return model.CommentNode{}, err
	}

	if s.classifier != nil {
		go s.classify(created)
	}
	if s.notifier != nil && parentID != "" && parentAuthor.ID != author.ID {
		s.notifier.ReplyPosted(parentAuthor.ID, postID, author.Name)
	}

	return s.repo.Node(ctx, postID, created.ID, author.ID)
}

// classify runs out of band: the comment is already visible and stays so
// unless the model objects, in which case it goes to pending for review.
func (s *commentService) classify(c model.Comment) {
	ctx := context.Background()

	res, err := s.classifier.ClassifyComment(ctx, c.Text)
	if err != nil {
		s.log.Warn().Err(err).Str("comment_id", c.ID).Msg("comment classification failed, keeping active")
		return
	}
	if res.IsApproved {
		return
	}

	if _, err := s.repo.SetStatus(ctx, c.PostID, c.ID, model.StatusPending); err != nil {
		s.log.Warn().Err(err).Str("comment_id", c.ID).Msg("could not apply classification verdict")
		return
	}
	s.log.Info().Str("comment_id", c.ID).Str("reason", res.Reason).Msg("comment sent to review")
}

func (s *commentService) Forest(ctx context.Context, postID, viewerID string) ([]model.CommentNode, error) {
	if postID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.Forest(ctx, postID, viewerID)
}

func (s *commentService) ToggleLike(ctx context.Context, postID, commentID, viewerID string) (model.CommentNode, error) {
	if viewerID == "" {
		return model.CommentNode{}, ErrUnauthenticated
	}
	if postID == "" || commentID == "" {
		return model.CommentNode{}, ErrInvalidInput
	}

	n, err := s.repo.ToggleLike(ctx, postID, commentID, viewerID)
	if errors.Is(err, storage.ErrNotFound) {
		return model.CommentNode{}, ErrNotFound
	}
	return n, err
}

func (s *commentService) SetStatus(ctx context.Context, postID, commentID string, status model.Status) (model.CommentNode, error) {
	if !status.Valid() {
		return model.CommentNode{}, ErrInvalidInput
	}

	n, err := s.repo.SetStatus(ctx, postID, commentID, status)
	if errors.Is(err, storage.ErrNotFound) {
		return model.CommentNode{}, ErrNotFound
	}
	return n, err
}

func (s *commentService) Report(ctx context.Context, postID, commentID, reporterID string, reason model.ReportReason) (model.Report, error) {
	if reporterID == "" {
		return model.Report{}, ErrUnauthenticated
	}
	if !reason.Valid() {
		return model.Report{}, ErrInvalidInput
	}

	c, err := s.repo.Get(ctx, postID, commentID)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Report{}, ErrNotFound
	}
	if err != nil {
		return model.Report{}, err
	}

	rep := model.Report{
		ID:         uuid.NewString(),
		CommentID:  commentID,
		ReportedBy: reporterID,
		Reason:     reason,
		Text:       c.Text,
		Status:     model.ReportOpen,
		CreatedAt:  time.Now().UTC(),
	}
	rep, err = s.repo.CreateReport(ctx, rep)
	if err != nil {
		return model.Report{}, err
	}

	// A reported comment waits for a moderator; statuses past active are
	// already a moderation decision and stay as they are.
	if c.Status == model.StatusActive {
		if _, err := s.repo.SetStatus(ctx, postID, commentID, model.StatusPending); err != nil {
			s.log.Warn().Err(err).Str("comment_id", commentID).Msg("could not flag reported comment")
		}
	}

	return rep, nil
}

func (s *commentService) OpenReports(ctx context.Context) ([]model.Report, error) {
	return s.repo.OpenReports(ctx)
}

func (s *commentService) ResolveReport(ctx context.Context, reportID string, status model.ReportStatus) (model.Report, error) {
	if !status.Valid() || status == model.ReportOpen {
		return model.Report{}, ErrInvalidInput
	}

	rep, err := s.repo.SetReportStatus(ctx, reportID, status)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Report{}, ErrNotFound
	}
	return rep, err
}

func validateText(text string) error {
	t := strings.TrimSpace(text)
	if t == "" || len(t) > maxTextLen {
		return ErrInvalidInput
	}
	return nil
}
