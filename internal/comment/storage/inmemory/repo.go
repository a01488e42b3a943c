// Package inmemory keeps comment forests in an id-keyed arena with a
// parent/children adjacency index, so lookups by id never walk the tree.
// Read paths materialize fresh value trees, which keeps callers on a
// copy-on-write contract: mutating one branch can never alias another.
package inmemory

import (
	"context"
	"sync"

	"github.com/harsach/newsportal/internal/comment/model"
	"github.com/harsach/newsportal/internal/comment/storage"
)

type Repo struct {
	mu sync.RWMutex

	byID     map[string]model.Comment
	roots    map[string][]string // postID -> top-level ids, newest first
	children map[string][]string // commentID -> reply ids, oldest first
	likes    map[string]map[string]struct{}

	reports     map[string]model.Report
	reportOrder []string
}

func New() *Repo {
	return &Repo{
		byID:     make(map[string]model.Comment),
		roots:    make(map[string][]string),
		children: make(map[string][]string),
		likes:    make(map[string]map[string]struct{}),
		reports:  make(map[string]model.Report),
	}
}

func (r *Repo) Exists(ctx context.Context, postID, id string) (bool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	return ok && c.PostID == postID, nil
}

func (r *Repo) Get(ctx context.Context, postID, id string) (model.Comment, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok || c.PostID != postID {
		return model.Comment{}, storage.ErrNotFound
	}
	return c, nil
}

func (r *Repo) Create(ctx context.Context, c model.Comment) (model.Comment, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ParentID != "" {
		p, ok := r.byID[c.ParentID]
		if !ok || p.PostID != c.PostID {
			return model.Comment{}, storage.ErrNotFound
		}
	}

	r.byID[c.ID] = c
	if c.ParentID == "" {
		r.roots[c.PostID] = append([]string{c.ID}, r.roots[c.PostID]...)
	} else {
		r.children[c.ParentID] = append(r.children[c.ParentID], c.ID)
	}

	return c, nil
}

func (r *Repo) Forest(ctx context.Context, postID, viewerID string) ([]model.CommentNode, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.roots[postID]
	items := make([]model.CommentNode, 0, len(ids))
	for _, id := range ids {
		items = append(items, r.buildNodeLocked(id, viewerID))
	}
	return items, nil
}

func (r *Repo) Node(ctx context.Context, postID, id, viewerID string) (model.CommentNode, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.byID[id]; !ok || c.PostID != postID {
		return model.CommentNode{}, storage.ErrNotFound
	}
	return r.buildNodeLocked(id, viewerID), nil
}

func (r *Repo) buildNodeLocked(id, viewerID string) model.CommentNode {
	n := model.CommentNode{Comment: r.byID[id]}
	n.LikeCount = len(r.likes[id])
	if viewerID != "" {
		_, n.IsLiked = r.likes[id][viewerID]
	}

	ids := r.children[id]
	n.Replies = make([]model.CommentNode, 0, len(ids))
	for _, cid := range ids {
		n.Replies = append(n.Replies, r.buildNodeLocked(cid, viewerID))
	}
	return n
}

func (r *Repo) ToggleLike(ctx context.Context, postID, id, viewerID string) (model.CommentNode, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.byID[id]; !ok || c.PostID != postID {
		return model.CommentNode{}, storage.ErrNotFound
	}

	set, ok := r.likes[id]
	if !ok {
		set = make(map[string]struct{})
		r.likes[id] = set
	}
	if _, liked := set[viewerID]; liked {
		delete(set, viewerID)
	} else {
		set[viewerID] = struct{}{}
	}

	return r.buildNodeLocked(id, viewerID), nil
}

func (r *Repo) SetStatus(ctx context.Context, postID, id string, st model.Status) (model.CommentNode, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok || c.PostID != postID {
		return model.CommentNode{}, storage.ErrNotFound
	}
	c.Status = st
	r.byID[id] = c

	return r.buildNodeLocked(id, ""), nil
}

func (r *Repo) CreateReport(ctx context.Context, rep model.Report) (model.Report, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[rep.CommentID]; !ok {
		return model.Report{}, storage.ErrNotFound
	}
	r.reports[rep.ID] = rep
	r.reportOrder = append(r.reportOrder, rep.ID)
	return rep, nil
}

func (r *Repo) OpenReports(ctx context.Context) ([]model.Report, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.Report, 0, len(r.reportOrder))
	for _, id := range r.reportOrder {
		if rep := r.reports[id]; rep.Status == model.ReportOpen {
			items = append(items, rep)
		}
	}
	return items, nil
}

func (r *Repo) SetReportStatus(ctx context.Context, reportID string, st model.ReportStatus) (model.Report, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	rep, ok := r.reports[reportID]
	if !ok {
		return model.Report{}, storage.ErrNotFound
	}
	rep.Status = st
	r.reports[reportID] = rep
	return rep, nil
}
