package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harsach/newsportal/internal/post/cache"
	"github.com/harsach/newsportal/internal/post/model"
	"github.com/harsach/newsportal/internal/post/storage"
)

var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("post is no longer pending")
)

const (
	maxTitleLen   = 300
	maxContentLen = 20000
	maxFeedLimit  = 100
)

// Deps are the optional collaborators; any of them may be nil.
type Deps struct {
	Verifier Verifier
	Source   ContentSource
	Cache    FeedCache
	Notifier Notifier
	Authors  AuthorStats
}

type postService struct {
	repo storage.Repository
	deps Deps
	log  zerolog.Logger
}

func New(repo storage.Repository, deps Deps, log zerolog.Logger) PostService {
	return &postService{repo: repo, deps: deps, log: log}
}

func (s *postService) Create(ctx context.Context, authorID, authorName string, authorLevel int, p model.Post) (model.Post, error) {
	if authorID == "" {
		return model.Post{}, ErrUnauthenticated
	}
	title := strings.TrimSpace(p.Title)
	content := strings.TrimSpace(p.Content)
	if title == "" || len(title) > maxTitleLen || content == "" || len(content) > maxContentLen {
		return model.Post{}, ErrInvalidInput
	}
	if !p.Type.Valid() {
		return model.Post{}, ErrInvalidInput
	}

	p.ID = uuid.NewString()
	p.Title = title
	p.Content = content
	p.AuthorID = authorID
	p.AuthorName = authorName
	p.AuthorLevel = authorLevel
	p.Views = 0
	p.ReportCount = 0
	p.Status = model.StatusPending
	p.RejectionReason = ""
	p.AIRisk = ""
	p.AIScore = 0
	p.AIReason = ""
	p.CreatedAt = time.Now().UTC()

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return model.Post{}, err
	}

	if s.deps.Authors != nil {
		s.deps.Authors.RecordPost(ctx, authorID)
	}
	if s.deps.Verifier != nil {
		go s.verify(created)
	}

	return created, nil
}

// verify records the advisory reliability verdict; a failure leaves the post
// unannotated and still waiting for a human moderator.
func (s *postService) verify(p model.Post) {
	ctx := context.Background()

	v, err := s.deps.Verifier.VerifyPost(ctx, p.Title, p.Content)
	if err != nil {
		s.log.Warn().Err(err).Str("post_id", p.ID).Msg("post verification failed")
		return
	}

	risk := riskFromVerification(v.IsReliable, v.Score)
	if err := s.repo.SetVerification(ctx, p.ID, risk, v.Score, v.Reason); err != nil {
		s.log.Warn().Err(err).Str("post_id", p.ID).Msg("could not record verification")
		return
	}
	s.log.Info().Str("post_id", p.ID).Str("risk", string(risk)).Float64("score", v.Score).Msg("post verified")
}

func riskFromVerification(reliable bool, score float64) model.Risk {
	switch {
	case !reliable || score < 4:
		return model.RiskHigh
	case score < 7:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

func (s *postService) Get(ctx context.Context, id string) (model.Post, error) {
	if id == "" {
		return model.Post{}, ErrInvalidInput
	}
	p, err := s.repo.IncrementViews(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Post{}, ErrNotFound
	}
	return p, err
}

func (s *postService) Feed(ctx context.Context, f model.Filter, page, limit int) (model.FeedPage, error) {
	if page <= 0 || limit <= 0 || limit > maxFeedLimit {
		return model.FeedPage{}, ErrInvalidInput
	}
	if f.Type != "" && !f.Type.Valid() {
		return model.FeedPage{}, ErrInvalidInput
	}

	key := cache.Key(f, page, limit)
	if s.deps.Cache != nil {
		if cached, ok := s.deps.Cache.GetFeed(ctx, key); ok {
			return cached, nil
		}
	}

	feed, err := s.repo.Feed(ctx, f, page, limit)
	if err != nil {
		return model.FeedPage{}, err
	}

	if s.deps.Cache != nil {
		s.deps.Cache.SetFeed(ctx, key, feed)
	}
	return feed, nil
}

func (s *postService) Report(ctx context.Context, id, reporterID string) (model.Post, error) {
	if reporterID == "" {
		return model.Post{}, ErrUnauthenticated
	}
	p, err := s.repo.IncrementReports(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Post{}, ErrNotFound
	}
	return p, err
}

func (s *postService) Approve(ctx context.Context, id string) (model.Post, error) {
	return s.transition(ctx, id, model.StatusApproved, "")
}

func (s *postService) Reject(ctx context.Context, id, reason string) (model.Post, error) {
	return s.transition(ctx, id, model.StatusRejected, strings.TrimSpace(reason))
}

// transition enforces the one-way gate: only pending posts move, and they
// move exactly once.
func (s *postService) transition(ctx context.Context, id string, to model.Status, reason string) (model.Post, error) {
	p, err := s.repo.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Post{}, ErrNotFound
	}
	if err != nil {
		return model.Post{}, err
	}
	if p.Status != model.StatusPending {
		return model.Post{}, ErrInvalidTransition
	}

	updated, err := s.repo.SetStatus(ctx, id, to, reason)
	if err != nil {
		return model.Post{}, err
	}

	approved := to == model.StatusApproved
	if s.deps.Authors != nil && updated.AuthorID != "" {
		s.deps.Authors.RecordPostOutcome(ctx, updated.AuthorID, approved)
	}
	if s.deps.Notifier != nil && updated.AuthorID != "" {
		if approved {
			s.deps.Notifier.PostApproved(updated.AuthorID, updated.ID, updated.Title)
		} else {
			s.deps.Notifier.PostRejected(updated.AuthorID, updated.ID, updated.Title, reason)
		}
	}
	if s.deps.Cache != nil {
		s.deps.Cache.Invalidate(ctx)
	}

	return updated, nil
}

func (s *postService) Pending(ctx context.Context) ([]model.Post, error) {
	return s.repo.Pending(ctx)
}

func (s *postService) Reported(ctx context.Context) ([]model.Post, error) {
	return s.repo.Reported(ctx)
}

func (s *postService) Stats(ctx context.Context) (model.AdminStats, error) {
	return s.repo.Stats(ctx)
}

func (s *postService) Seed(ctx context.Context) (int, error) {
	if s.deps.Source == nil {
		return 0, nil
	}

	items, err := s.deps.Source.FetchRecentContent(ctx)
	if err != nil {
		// Best effort: an unreachable source seeds nothing.
		s.log.Warn().Err(err).Msg("content source unavailable, seeding skipped")
		return 0, nil
	}

	added := 0
	for _, it := range items {
		title := strings.TrimSpace(it.Title)
		content := strings.TrimSpace(it.Content)
		if title == "" || content == "" {
			continue
		}

		p := model.Post{
			ID:         uuid.NewString(),
			Title:      title,
			Content:    content,
			Thumbnail:  it.ThumbnailURL,
			Category:   it.Category,
			Type:       model.Type(it.Type),
			AuthorName: "Har Sach Bureau",
			Status:     model.StatusApproved,
			CreatedAt:  time.Now().UTC(),
		}
		if !p.Type.Valid() {
			continue
		}
		if _, err := s.repo.Create(ctx, p); err != nil {
			return added, err
		}
		added++
	}

	if added > 0 && s.deps.Cache != nil {
		s.deps.Cache.Invalidate(ctx)
	}
	return added, nil
}
