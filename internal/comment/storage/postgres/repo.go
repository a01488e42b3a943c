package postgres

import (
	"context"
	"database/sql"
	"sort"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/harsach/newsportal/internal/comment/model"
	"github.com/harsach/newsportal/internal/comment/storage"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

type nodePtr struct {
	n        model.CommentNode
	children []*nodePtr
}

func (r *Repo) Exists(ctx context.Context, postID, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM comments WHERE id=$1 AND post_id=$2`, id, postID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *Repo) Get(ctx context.Context, postID, id string) (model.Comment, error) {
	var c model.Comment
	var parent sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, post_id, parent_id, author_id, author_name, author_avatar, author_trust,
		       body, status, created_at
		FROM comments
		WHERE id=$1 AND post_id=$2
	`, id, postID).Scan(&c.ID, &c.PostID, &parent, &c.Author.ID, &c.Author.Name,
		&c.Author.Avatar, &c.Author.TrustLevel, &c.Text, &c.Status, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Comment{}, storage.ErrNotFound
	}
	if err != nil {
		return model.Comment{}, err
	}
	c.ParentID = parent.String
	return c, nil
}

func (r *Repo) Create(ctx context.Context, c model.Comment) (model.Comment, error) {
	var parent any
	if c.ParentID != "" {
		parent = c.ParentID
	}

	query, args, err := psql.Insert("comments").
		Columns("id", "post_id", "parent_id", "author_id", "author_name",
			"author_avatar", "author_trust", "body", "status", "created_at").
		Values(c.ID, c.PostID, parent, c.Author.ID, c.Author.Name,
			c.Author.Avatar, c.Author.TrustLevel, c.Text, c.Status, c.CreatedAt).
		ToSql()
	if err != nil {
		return model.Comment{}, err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

// Forest loads all rows for a post in one pass and assembles the tree in
// memory; orderings are applied during assembly (roots newest-first, replies
// oldest-first).
func (r *Repo) Forest(ctx context.Context, postID, viewerID string) ([]model.CommentNode, error) {
	nodes, rootIDs, err := r.loadPost(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	items := make([]model.CommentNode, 0, len(rootIDs))
	for _, id := range rootIDs {
		items = append(items, toValueTree(nodes[id]))
	}
	return items, nil
}

func (r *Repo) Node(ctx context.Context, postID, id, viewerID string) (model.CommentNode, error) {
	nodes, _, err := r.loadPost(ctx, postID, viewerID)
	if err != nil {
		return model.CommentNode{}, err
	}
	n, ok := nodes[id]
	if !ok {
		return model.CommentNode{}, storage.ErrNotFound
	}
	return toValueTree(n), nil
}

func (r *Repo) loadPost(ctx context.Context, postID, viewerID string) (map[string]*nodePtr, []string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.post_id, c.parent_id, c.author_id, c.author_name, c.author_avatar,
		       c.author_trust, c.body, c.status, c.created_at,
		       count(l.user_id) AS like_count,
		       bool_or(l.user_id = $2) AS is_liked
		FROM comments c
		LEFT JOIN comment_likes l ON l.comment_id = c.id
		WHERE c.post_id = $1
		GROUP BY c.id
	`, postID, viewerID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	nodes := make(map[string]*nodePtr, 64)
	for rows.Next() {
		var n model.CommentNode
		var parent sql.NullString
		var liked sql.NullBool
		if err := rows.Scan(&n.ID, &n.PostID, &parent, &n.Author.ID, &n.Author.Name,
			&n.Author.Avatar, &n.Author.TrustLevel, &n.Text, &n.Status, &n.CreatedAt,
			&n.LikeCount, &liked); err != nil {
			return nil, nil, err
		}
		n.ParentID = parent.String
		n.IsLiked = liked.Valid && liked.Bool
		nodes[n.ID] = &nodePtr{n: n}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var rootIDs []string
	for _, n := range nodes {
		if n.n.ParentID == "" {
			rootIDs = append(rootIDs, n.n.ID)
			continue
		}
		if p, ok := nodes[n.n.ParentID]; ok {
			p.children = append(p.children, n)
		}
	}

	sort.Slice(rootIDs, func(i, j int) bool {
		return nodes[rootIDs[i]].n.CreatedAt.After(nodes[rootIDs[j]].n.CreatedAt)
	})

	return nodes, rootIDs, nil
}

func toValueTree(n *nodePtr) model.CommentNode {
	out := n.n

	sort.Slice(n.children, func(i, j int) bool {
		return n.children[i].n.CreatedAt.Before(n.children[j].n.CreatedAt)
	})

	out.Replies = make([]model.CommentNode, 0, len(n.children))
	for _, ch := range n.children {
		out.Replies = append(out.Replies, toValueTree(ch))
	}
	return out
}

func (r *Repo) ToggleLike(ctx context.Context, postID, id, viewerID string) (model.CommentNode, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.CommentNode{}, err
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM comments WHERE id=$1 AND post_id=$2`, id, postID).Scan(&one)
	if err == sql.ErrNoRows {
		return model.CommentNode{}, storage.ErrNotFound
	}
	if err != nil {
		return model.CommentNode{}, err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM comment_likes WHERE comment_id=$1 AND user_id=$2`, id, viewerID)
	if err != nil {
		return model.CommentNode{}, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return model.CommentNode{}, err
	}
	if deleted == 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO comment_likes(comment_id, user_id) VALUES ($1, $2)`, id, viewerID); err != nil {
			return model.CommentNode{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.CommentNode{}, err
	}

	return r.Node(ctx, postID, id, viewerID)
}

func (r *Repo) SetStatus(ctx context.Context, postID, id string, st model.Status) (model.CommentNode, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comments SET status=$1 WHERE id=$2 AND post_id=$3`, st, id, postID)
	if err != nil {
		return model.CommentNode{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.CommentNode{}, err
	}
	if n == 0 {
		return model.CommentNode{}, storage.ErrNotFound
	}
	return r.Node(ctx, postID, id, "")
}

func (r *Repo) CreateReport(ctx context.Context, rep model.Report) (model.Report, error) {
	query, args, err := psql.Insert("comment_reports").
		Columns("id", "comment_id", "reported_by", "reason", "body", "status", "created_at").
		Values(rep.ID, rep.CommentID, rep.ReportedBy, rep.Reason, rep.Text, rep.Status, rep.CreatedAt).
		ToSql()
	if err != nil {
		return model.Report{}, err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return model.Report{}, err
	}
	return rep, nil
}

func (r *Repo) OpenReports(ctx context.Context) ([]model.Report, error) {
	query, args, err := psql.Select("id", "comment_id", "reported_by", "reason", "body", "status", "created_at").
		From("comment_reports").
		Where(sq.Eq{"status": model.ReportOpen}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Report
	for rows.Next() {
		var rep model.Report
		if err := rows.Scan(&rep.ID, &rep.CommentID, &rep.ReportedBy, &rep.Reason,
			&rep.Text, &rep.Status, &rep.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, rep)
	}
	return items, rows.Err()
}

func (r *Repo) SetReportStatus(ctx context.Context, reportID string, st model.ReportStatus) (model.Report, error) {
	var rep model.Report
	err := r.db.QueryRowContext(ctx, `
		UPDATE comment_reports SET status=$1
		WHERE id=$2
		RETURNING id, comment_id, reported_by, reason, body, status, created_at
	`, st, reportID).Scan(&rep.ID, &rep.CommentID, &rep.ReportedBy, &rep.Reason,
		&rep.Text, &rep.Status, &rep.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Report{}, storage.ErrNotFound
	}
	if err != nil {
		return model.Report{}, err
	}
	return rep, nil
}
