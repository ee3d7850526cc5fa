package article

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"news-agency/internal/domain/entity"
	"news-agency/internal/repository"
)

// FeaturedCount is how many of the newest published articles are featured.
const FeaturedCount = 3

// CreateInput carries the raw form values of a new article.
// Values are trimmed before validation.
type CreateInput struct {
	Title    string
	Author   string
	Category string
	Content  string
	Region   string
	Language string
	Date     string
}

// UpdateInput carries the full replacement of an article's editable fields.
type UpdateInput struct {
	ID int64
	CreateInput
}

// ListFilter narrows ListAll. Empty fields do not restrict.
type ListFilter struct {
	Region   string
	Language string
	Status   string
}

// FilterOptions are the distinct region and language values in storage.
type FilterOptions struct {
	Regions   []string
	Languages []string
}

// PublishedArticle is an entry of the public listing.
type PublishedArticle struct {
	Article  *entity.Article
	Featured bool
}

// Service provides article management use cases.
type Service struct {
	Repo repository.ArticleRepository
}

// ListPublished returns published articles, newest first, with the first
// FeaturedCount flagged as featured.
func (s *Service) ListPublished(ctx context.Context) ([]PublishedArticle, error) {
	articles, err := s.Repo.ListByStatus(ctx, entity.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}
	out := make([]PublishedArticle, len(articles))
	for i, a := range articles {
		out[i] = PublishedArticle{Article: a, Featured: i < FeaturedCount}
	}
	return out, nil
}

// ListAll returns articles of every status, newest first.
func (s *Service) ListAll(ctx context.Context, f ListFilter) ([]*entity.Article, error) {
	filters := repository.ArticleFilters{
		Region:   strings.TrimSpace(f.Region),
		Language: strings.TrimSpace(f.Language),
	}
	if st := strings.TrimSpace(f.Status); st != "" {
		status, err := entity.ParseStatus(st)
		if err != nil {
			return nil, err
		}
		filters.Status = status
	}

	articles, err := s.Repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// FilterValues returns the sorted distinct regions and languages.
// Both lists are non-nil.
func (s *Service) FilterValues(ctx context.Context) (FilterOptions, error) {
	regions, err := s.Repo.DistinctRegions(ctx)
	if err != nil {
		return FilterOptions{}, fmt.Errorf("list regions: %w", err)
	}
	languages, err := s.Repo.DistinctLanguages(ctx)
	if err != nil {
		return FilterOptions{}, fmt.Errorf("list languages: %w", err)
	}
	if regions == nil {
		regions = []string{}
	}
	if languages == nil {
		languages = []string{}
	}
	return FilterOptions{Regions: regions, Languages: languages}, nil
}

// Search matches term against title and content, ignoring case.
func (s *Service) Search(ctx context.Context, term string) ([]*entity.Article, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, &entity.ValidationError{Field: "q", Message: "Search term is required"}
	}
	articles, err := s.Repo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return articles, nil
}

// Stats returns article counts by status.
func (s *Service) Stats(ctx context.Context) (repository.ArticleStats, error) {
	stats, err := s.Repo.Stats(ctx)
	if err != nil {
		return repository.ArticleStats{}, fmt.Errorf("article stats: %w", err)
	}
	return stats, nil
}

// Create validates the input and stores a published article.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	art, err := in.toEntity()
	if err != nil {
		return nil, err
	}
	art.Status = entity.StatusPublished
	if err := art.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return art, nil
}

// Update replaces the editable fields of an existing article.
// A missing ID is reported as ErrRequiredFields, like any other missing field.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if in.ID <= 0 {
		return ErrRequiredFields
	}
	art, err := in.toEntity()
	if err != nil {
		return err
	}
	art.ID = in.ID
	if err := art.Validate(); err != nil {
		return err
	}

	if err := s.Repo.Update(ctx, art); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// SetStatus moves an article to another publication state.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) error {
	if id <= 0 {
		return ErrInvalidArticleID
	}
	st, err := entity.ParseStatus(status)
	if err != nil {
		return err
	}
	if err := s.Repo.SetStatus(ctx, id, st); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("set article status: %w", err)
	}
	return nil
}

// Delete removes an article permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidArticleID
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

func (in CreateInput) toEntity() (*entity.Article, error) {
	art := &entity.Article{
		Title:    strings.TrimSpace(in.Title),
		Author:   strings.TrimSpace(in.Author),
		Category: strings.TrimSpace(in.Category),
		Content:  strings.TrimSpace(in.Content),
		Region:   strings.TrimSpace(in.Region),
		Language: strings.TrimSpace(in.Language),
	}
	date := strings.TrimSpace(in.Date)
	if art.Title == "" || art.Content == "" || art.Region == "" || art.Language == "" || date == "" {
		return nil, ErrRequiredFields
	}

	d, err := entity.ParseDate(date)
	if err != nil {
		return nil, err
	}
	art.Date = d
	return art, nil
}
