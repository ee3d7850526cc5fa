package article_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"news-agency/internal/domain/entity"
	"news-agency/internal/repository"
)

// memRepo はハンドラテスト用のインメモリ実装
type memRepo struct {
	rows   []*entity.Article
	nextID int64
	err    error
}

func newMemRepo(rows ...*entity.Article) *memRepo {
	m := &memRepo{nextID: 1}
	for _, r := range rows {
		r.ID = m.nextID
		m.nextID++
		m.rows = append(m.rows, r)
	}
	return m
}

func (m *memRepo) newest(keep func(*entity.Article) bool) ([]*entity.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []*entity.Article{}
	for _, a := range m.rows {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) find(id int64) *entity.Article {
	for _, a := range m.rows {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (m *memRepo) ListByStatus(_ context.Context, st entity.Status) ([]*entity.Article, error) {
	return m.newest(func(a *entity.Article) bool { return a.Status == st })
}

func (m *memRepo) List(_ context.Context, f repository.ArticleFilters) ([]*entity.Article, error) {
	return m.newest(func(a *entity.Article) bool {
		return (f.Region == "" || a.Region == f.Region) &&
			(f.Language == "" || a.Language == f.Language) &&
			(f.Status == "" || a.Status == f.Status)
	})
}

func (m *memRepo) Search(_ context.Context, kw string) ([]*entity.Article, error) {
	kw = strings.ToLower(kw)
	return m.newest(func(a *entity.Article) bool {
		return strings.Contains(strings.ToLower(a.Title+" "+a.Content), kw)
	})
}

func (m *memRepo) distinct(pick func(*entity.Article) string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	set := map[string]struct{}{}
	for _, a := range m.rows {
		if v := pick(a); v != "" {
			set[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func (m *memRepo) DistinctRegions(context.Context) ([]string, error) {
	return m.distinct(func(a *entity.Article) string { return a.Region })
}

func (m *memRepo) DistinctLanguages(context.Context) ([]string, error) {
	return m.distinct(func(a *entity.Article) string { return a.Language })
}

func (m *memRepo) Stats(context.Context) (repository.ArticleStats, error) {
	if m.err != nil {
		return repository.ArticleStats{}, m.err
	}
	st := repository.ArticleStats{Total: int64(len(m.rows))}
	for _, a := range m.rows {
		switch a.Status {
		case entity.StatusPublished:
			st.Published++
		case entity.StatusDraft:
			st.Draft++
		case entity.StatusPending:
			st.Pending++
		case entity.StatusArchived:
			st.Archived++
		}
	}
	return st, nil
}

func (m *memRepo) Create(_ context.Context, a *entity.Article) error {
	if m.err != nil {
		return m.err
	}
	a.ID = m.nextID
	m.nextID++
	a.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(a.ID) * time.Hour)
	a.UpdatedAt = a.CreatedAt
	m.rows = append(m.rows, a)
	return nil
}

func (m *memRepo) Update(_ context.Context, a *entity.Article) error {
	if m.err != nil {
		return m.err
	}
	old := m.find(a.ID)
	if old == nil {
		return fmt.Errorf("update: %w", entity.ErrNotFound)
	}
	old.Title, old.Author, old.Category = a.Title, a.Author, a.Category
	old.Content, old.Region, old.Language, old.Date = a.Content, a.Region, a.Language, a.Date
	return nil
}

func (m *memRepo) SetStatus(_ context.Context, id int64, st entity.Status) error {
	if m.err != nil {
		return m.err
	}
	a := m.find(id)
	if a == nil {
		return fmt.Errorf("set status: %w", entity.ErrNotFound)
	}
	a.Status = st
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	for i, a := range m.rows {
		if a.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete: %w", entity.ErrNotFound)
}
