package inmemory

import (
	"context"
	"sync"

	"github.com/harsach/newsportal/internal/post/model"
	"github.com/harsach/newsportal/internal/post/storage"
)

type Repo struct {
	mu    sync.RWMutex
	byID  map[string]model.Post
	order []string // newest first
}

func New() *Repo {
	return &Repo{byID: make(map[string]model.Post)}
}

func (r *Repo) Create(ctx context.Context, p model.Post) (model.Post, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	r.order = append([]string{p.ID}, r.order...)
	return p, nil
}

func (r *Repo) Get(ctx context.Context, id string) (model.Post, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return model.Post{}, storage.ErrNotFound
	}
	return p, nil
}

func (r *Repo) Feed(ctx context.Context, f model.Filter, page, limit int) (model.FeedPage, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]model.Post, 0, len(r.order))
	for _, id := range r.order {
		p := r.byID[id]
		if p.Status != model.StatusApproved {
			continue
		}
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if f.SubCategory != "" && p.SubCategory != f.SubCategory {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return model.FeedPage{
		Items: append([]model.Post(nil), matched[start:end]...),
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

func (r *Repo) SetStatus(ctx context.Context, id string, st model.Status, reason string) (model.Post, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return model.Post{}, storage.ErrNotFound
	}
	p.Status = st
	p.RejectionReason = reason
	r.byID[id] = p
	return p, nil
}

func (r *Repo) SetVerification(ctx context.Context, id string, risk model.Risk, score float64, reason string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	p.AIRisk = risk
	p.AIScore = score
	p.AIReason = reason
	r.byID[id] = p
	return nil
}

func (r *Repo) IncrementViews(ctx context.Context, id string) (model.Post, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return model.Post{}, storage.ErrNotFound
	}
	p.Views++
	r.byID[id] = p
	return p, nil
}

func (r *Repo) IncrementReports(ctx context.Context, id string) (model.Post, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return model.Post{}, storage.ErrNotFound
	}
	p.ReportCount++
	r.byID[id] = p
	return p, nil
}

func (r *Repo) Pending(ctx context.Context) ([]model.Post, error) {
	return r.collect(ctx, func(p model.Post) bool { return p.Status == model.StatusPending })
}

func (r *Repo) Reported(ctx context.Context) ([]model.Post, error) {
	return r.collect(ctx, func(p model.Post) bool { return p.ReportCount > 0 })
}

func (r *Repo) collect(ctx context.Context, keep func(model.Post) bool) ([]model.Post, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.Post, 0, 16)
	for _, id := range r.order {
		if p := r.byID[id]; keep(p) {
			items = append(items, p)
		}
	}
	return items, nil
}

func (r *Repo) Stats(ctx context.Context) (model.AdminStats, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	var st model.AdminStats
	for _, p := range r.byID {
		st.TotalPosts++
		switch p.Status {
		case model.StatusPending:
			st.PendingApproval++
		case model.StatusApproved:
			st.Approved++
		case model.StatusRejected:
			st.Rejected++
		}
		if p.ReportCount > 0 {
			st.Reported++
		}
		if p.AIRisk == model.RiskHigh {
			st.AIFlagged++
		}
	}
	return st, nil
}
