package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"news-agency/internal/domain/entity"
	"news-agency/internal/repository"
)

const articleColumns = `id, title, author, category, content, region, language, date, status, created_at, updated_at`

type ArticleRepo struct {
	db           Querier
	queryBuilder *ArticleQueryBuilder
}

func NewArticleRepo(db Querier) repository.ArticleRepository {
	return &ArticleRepo{
		db:           db,
		queryBuilder: NewArticleQueryBuilder(),
	}
}

func (repo *ArticleRepo) ListByStatus(ctx context.Context, status entity.Status) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE status = $1
ORDER BY created_at DESC, id DESC`
	rows, err := repo.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("ListByStatus: %w", err)
	}
	return collectArticles(rows, "ListByStatus")
}

func (repo *ArticleRepo) List(ctx context.Context, filters repository.ArticleFilters) ([]*entity.Article, error) {
	where, args := repo.queryBuilder.BuildWhereClause(filters)
	query := `
SELECT ` + articleColumns + `
FROM articles
` + where + `
ORDER BY created_at DESC, id DESC`
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return collectArticles(rows, "List")
}

func (repo *ArticleRepo) Search(ctx context.Context, keyword string) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE title   ILIKE $1
    OR content ILIKE $1
ORDER BY created_at DESC, id DESC`
	param := "%" + EscapeILIKE(keyword) + "%"
	rows, err := repo.db.QueryContext(ctx, query, param)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	return collectArticles(rows, "Search")
}

func (repo *ArticleRepo) DistinctRegions(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT region FROM articles WHERE region IS NOT NULL ORDER BY region`
	return repo.distinct(ctx, "DistinctRegions", query)
}

func (repo *ArticleRepo) DistinctLanguages(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT language FROM articles WHERE language IS NOT NULL ORDER BY language`
	return repo.distinct(ctx, "DistinctLanguages", query)
}

func (repo *ArticleRepo) distinct(ctx context.Context, op, query string) ([]string, error) {
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	values := make([]string, 0, 16)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (repo *ArticleRepo) Stats(ctx context.Context) (repository.ArticleStats, error) {
	const query = `
SELECT COUNT(*),
       COUNT(CASE WHEN status = 'published' THEN 1 END),
       COUNT(CASE WHEN status = 'draft'     THEN 1 END),
       COUNT(CASE WHEN status = 'pending'   THEN 1 END),
       COUNT(CASE WHEN status = 'archived'  THEN 1 END)
FROM articles`
	var s repository.ArticleStats
	err := repo.db.QueryRowContext(ctx, query).
		Scan(&s.Total, &s.Published, &s.Draft, &s.Pending, &s.Archived)
	if err != nil {
		return repository.ArticleStats{}, fmt.Errorf("Stats: %w", err)
	}
	return s, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles
       (title, author, category, content, region, language, date, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at, updated_at`
	var updatedAt sql.NullTime
	err := repo.db.QueryRowContext(ctx, query,
		article.Title, nullString(article.Author), nullString(article.Category),
		article.Content, article.Region, article.Language,
		article.Date, string(article.Status),
	).Scan(&article.ID, &article.CreatedAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	article.UpdatedAt = updatedAt.Time
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles SET
       title      = $1,
       author     = $2,
       category   = $3,
       content    = $4,
       region     = $5,
       language   = $6,
       date       = $7,
       updated_at = CURRENT_TIMESTAMP
WHERE id = $8`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, nullString(article.Author), nullString(article.Category),
		article.Content, article.Region, article.Language,
		article.Date, article.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) SetStatus(ctx context.Context, id int64, status entity.Status) error {
	const query = `UPDATE articles SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	res, err := repo.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("SetStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("SetStatus: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(s rowScanner) (*entity.Article, error) {
	var (
		a                                  entity.Article
		author, category, region, language sql.NullString
		date, createdAt, updatedAt         sql.NullTime
		status                             string
	)
	if err := s.Scan(&a.ID, &a.Title, &author, &category, &a.Content,
		&region, &language, &date, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	a.Author = author.String
	a.Category = category.String
	a.Region = region.String
	a.Language = language.String
	a.Date = dateOnly(date)
	a.Status = entity.Status(status)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return &a, nil
}

func collectArticles(rows *sql.Rows, op string) ([]*entity.Article, error) {
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	articles := make([]*entity.Article, 0, 100)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// DATE カラムはドライバによってタイムゾーン付きで返るため日付部分のみ残す
func dateOnly(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	y, m, d := t.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
