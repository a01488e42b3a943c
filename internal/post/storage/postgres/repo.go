package postgres

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/harsach/newsportal/internal/post/model"
	"github.com/harsach/newsportal/internal/post/storage"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const postColumns = `id, title, content, thumbnail, category, sub_category, type,
	author_id, author_name, author_level, views, location, tags, is_trending,
	status, rejection_reason, report_count, ai_risk, ai_score, ai_reason,
	salary, company, last_date, created_at`

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, p model.Post) (model.Post, error) {
	query, args, err := psql.Insert("posts").
		Columns("id", "title", "content", "thumbnail", "category", "sub_category", "type",
			"author_id", "author_name", "author_level", "views", "location", "tags", "is_trending",
			"status", "rejection_reason", "report_count", "ai_risk", "ai_score", "ai_reason",
			"salary", "company", "last_date", "created_at").
		Values(p.ID, p.Title, p.Content, p.Thumbnail, p.Category, p.SubCategory, p.Type,
			p.AuthorID, p.AuthorName, p.AuthorLevel, p.Views, p.Location, strings.Join(p.Tags, ","), p.IsTrending,
			p.Status, p.RejectionReason, p.ReportCount, p.AIRisk, p.AIScore, p.AIReason,
			p.Salary, p.Company, p.LastDate, p.CreatedAt).
		ToSql()
	if err != nil {
		return model.Post{}, err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return model.Post{}, err
	}
	return p, nil
}

func (r *Repo) Get(ctx context.Context, id string) (model.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id=$1`, id)
	return scanPost(row)
}

func (r *Repo) Feed(ctx context.Context, f model.Filter, page, limit int) (model.FeedPage, error) {
	where := sq.And{sq.Eq{"status": model.StatusApproved}}
	if f.Type != "" {
		where = append(where, sq.Eq{"type": f.Type})
	}
	if f.SubCategory != "" {
		where = append(where, sq.Eq{"sub_category": f.SubCategory})
	}

	countQ, countArgs, err := psql.Select("count(*)").From("posts").Where(where).ToSql()
	if err != nil {
		return model.FeedPage{}, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return model.FeedPage{}, err
	}

	query, args, err := psql.Select(postColumns).
		From("posts").
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return model.FeedPage{}, err
	}

	items, err := r.queryPosts(ctx, query, args...)
	if err != nil {
		return model.FeedPage{}, err
	}

	return model.FeedPage{Items: items, Page: page, Limit: limit, Total: total}, nil
}

func (r *Repo) SetStatus(ctx context.Context, id string, st model.Status, reason string) (model.Post, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE posts SET status=$1, rejection_reason=$2
		WHERE id=$3
		RETURNING `+postColumns, st, reason, id)
	return scanPost(row)
}

func (r *Repo) SetVerification(ctx context.Context, id string, risk model.Risk, score float64, reason string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET ai_risk=$1, ai_score=$2, ai_reason=$3 WHERE id=$4`,
		risk, score, reason, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *Repo) IncrementViews(ctx context.Context, id string) (model.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE posts SET views = views + 1 WHERE id=$1 RETURNING `+postColumns, id)
	return scanPost(row)
}

func (r *Repo) IncrementReports(ctx context.Context, id string) (model.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE posts SET report_count = report_count + 1 WHERE id=$1 RETURNING `+postColumns, id)
	return scanPost(row)
}

func (r *Repo) Pending(ctx context.Context) ([]model.Post, error) {
	query, args, err := psql.Select(postColumns).
		From("posts").
		Where(sq.Eq{"status": model.StatusPending}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryPosts(ctx, query, args...)
}

func (r *Repo) Reported(ctx context.Context) ([]model.Post, error) {
	query, args, err := psql.Select(postColumns).
		From("posts").
		Where(sq.Gt{"report_count": 0}).
		OrderBy("report_count DESC, created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryPosts(ctx, query, args...)
}

func (r *Repo) Stats(ctx context.Context) (model.AdminStats, error) {
	var st model.AdminStats
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE status='pending'),
		       count(*) FILTER (WHERE status='approved'),
		       count(*) FILTER (WHERE status='rejected'),
		       count(*) FILTER (WHERE report_count > 0),
		       count(*) FILTER (WHERE ai_risk='High')
		FROM posts
	`).Scan(&st.TotalPosts, &st.PendingApproval, &st.Approved, &st.Rejected, &st.Reported, &st.AIFlagged)
	return st, err
}

func (r *Repo) queryPosts(ctx context.Context, query string, args ...any) ([]model.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Post, 0, 16)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (model.Post, error) {
	var p model.Post
	var tags string
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Thumbnail, &p.Category, &p.SubCategory,
		&p.Type, &p.AuthorID, &p.AuthorName, &p.AuthorLevel, &p.Views, &p.Location,
		&tags, &p.IsTrending, &p.Status, &p.RejectionReason, &p.ReportCount, &p.AIRisk,
		&p.AIScore, &p.AIReason, &p.Salary, &p.Company, &p.LastDate, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Post{}, storage.ErrNotFound
	}
	if err != nil {
		return model.Post{}, err
	}
	if tags != "" {
		p.Tags = strings.Split(tags, ",")
	}
	return p, nil
}
