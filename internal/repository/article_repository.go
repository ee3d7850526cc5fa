package repository

import (
	"context"

	"news-agency/internal/domain/entity"
)

// ArticleFilters narrows List to exact matches. Empty fields do not restrict.
type ArticleFilters struct {
	Region   string
	Language string
	Status   entity.Status
}

// IsEmpty reports whether no filter is set.
func (f ArticleFilters) IsEmpty() bool {
	return f.Region == "" && f.Language == "" && f.Status == ""
}

// ArticleStats holds article counts per status.
type ArticleStats struct {
	Total     int64
	Published int64
	Draft     int64
	Pending   int64
	Archived  int64
}

// ArticleRepository is the persistence port for articles.
// Every listing is ordered by created_at DESC.
// Update, Delete and SetStatus return an error wrapping entity.ErrNotFound
// when no row matched.
type ArticleRepository interface {
	ListByStatus(ctx context.Context, status entity.Status) ([]*entity.Article, error)
	List(ctx context.Context, filters ArticleFilters) ([]*entity.Article, error)
	Search(ctx context.Context, keyword string) ([]*entity.Article, error)
	// DistinctRegions and DistinctLanguages skip NULLs and sort ascending.
	DistinctRegions(ctx context.Context) ([]string, error)
	DistinctLanguages(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (ArticleStats, error)
	// Create stores the article and sets its ID and timestamps.
	Create(ctx context.Context, article *entity.Article) error
	Update(ctx context.Context, article *entity.Article) error
	SetStatus(ctx context.Context, id int64, status entity.Status) error
	Delete(ctx context.Context, id int64) error
}
