// Package public is the state machine behind the reader page: the article
// grid with search and filters, paging, the featured carousel and the
// article modal. It owns no I/O beyond its Source and renders through an
// injected Renderer.
package public

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"news-agency/internal/client/api"
	"news-agency/internal/client/notify"
	"news-agency/internal/client/sample"
)

const (
	// PageSize is the number of cards added by each LoadMore.
	PageSize = 6
	// SearchDebounce is the quiet period before a typed search is applied.
	SearchDebounce = 300 * time.Millisecond
	// SwipeThreshold is the minimum horizontal travel, in pixels, of a swipe.
	SwipeThreshold = 50

	msgSampleFallback = "Using sample articles. Please check your internet connection."
	msgRefreshed      = "News updated successfully!"
)

// Source is the read side of the articles API.
type Source interface {
	Published(ctx context.Context) ([]api.Article, error)
	Filters(ctx context.Context) (api.FilterOptions, error)
}

// Renderer receives a fresh View after every state transition.
type Renderer interface {
	Render(View)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(View)

// Render calls f.
func (f RenderFunc) Render(v View) { f(v) }

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets where user-facing messages go.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLogger sets the logger for load failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithDebounce overrides SearchDebounce.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) { s.debounce = d }
}

// Store holds the reader page state. All methods are safe for concurrent use.
type Store struct {
	src      Source
	render   Renderer
	notifier notify.Notifier
	logger   *slog.Logger
	debounce time.Duration

	mu          sync.Mutex
	all         []api.Article
	filtered    []api.Article
	displayed   int
	carouselPos int
	search      string
	region      string
	language    string
	regions     []string
	languages   []string
	openID      int64
	notice      *notify.Message
	pending     *time.Timer
	searchGen   uint64
}

// NewStore returns an empty store. Call Load to populate it.
func NewStore(src Source, r Renderer, opts ...Option) *Store {
	s := &Store{
		src:       src,
		render:    r,
		notifier:  notify.Discard,
		logger:    slog.Default(),
		debounce:  SearchDebounce,
		displayed: PageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.render == nil {
		s.render = RenderFunc(func(View) {})
	}
	return s
}

// Load fetches articles and filter options concurrently. Failures fall
// back to the built-in sample and default options rather than erroring.
// Options the server returns are used as is, even when empty.
func (s *Store) Load(ctx context.Context) {
	var (
		articles []api.Article
		opts     api.FilterOptions
		artErr   error
		optErr   error
	)
	// 片方が失敗してももう片方は最後まで待つ
	var g errgroup.Group
	g.Go(func() error {
		articles, artErr = s.src.Published(ctx)
		return nil
	})
	g.Go(func() error {
		opts, optErr = s.src.Filters(ctx)
		return nil
	})
	_ = g.Wait()

	var note *notify.Message
	if artErr != nil {
		articles, note = s.fallback(artErr)
	}
	if optErr != nil {
		s.logger.Warn("failed to load filter options, using defaults", slog.Any("error", optErr))
		opts = api.FilterOptions{Regions: sample.PublicRegions(), Languages: sample.PublicLanguages()}
	}

	s.mu.Lock()
	s.all = articles
	s.regions = opts.Regions
	s.languages = opts.Languages
	s.carouselPos = 0
	s.applyLocked()
	if note != nil {
		s.notice = note
	}
	v := s.viewLocked()
	s.mu.Unlock()

	if note != nil {
		s.notifier.Notify(note.Level, note.Text)
	}
	s.render.Render(v)
}

// Refresh reloads the articles and re-applies the current filters. A failed
// fetch switches to the sample articles with the same warning as Load, and
// the fetch error is returned.
func (s *Store) Refresh(ctx context.Context) error {
	articles, err := s.src.Published(ctx)
	note := &notify.Message{Level: notify.Success, Text: msgRefreshed}
	if err != nil {
		articles, note = s.fallback(err)
	}

	s.mu.Lock()
	s.all = articles
	if last := s.maxCarouselLocked(); s.carouselPos > last {
		s.carouselPos = max(last, 0)
	}
	s.applyLocked()
	s.notice = note
	v := s.viewLocked()
	s.mu.Unlock()

	s.notifier.Notify(note.Level, note.Text)
	s.render.Render(v)
	if err != nil {
		return fmt.Errorf("refresh articles: %w", err)
	}
	return nil
}

func (s *Store) fallback(err error) ([]api.Article, *notify.Message) {
	s.logger.Warn("failed to load articles, using sample", slog.Any("error", err))
	return sample.Public(), &notify.Message{Level: notify.Warning, Text: msgSampleFallback}
}

// SetSearchInput records a keystroke. The filter runs once typing has been
// quiet for the debounce period; a newer keystroke cancels the pending run.
func (s *Store) SetSearchInput(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPendingLocked()
	gen := s.searchGen
	s.pending = time.AfterFunc(s.debounce, func() { s.applySearch(gen, term) })
}

// applySearch runs a debounced search unless a later keystroke, SetSearch
// or ClearSearch has superseded it. A timer that already fired cannot be
// stopped, so the generation is checked under the lock.
func (s *Store) applySearch(gen uint64, term string) {
	s.mu.Lock()
	if gen != s.searchGen {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.search = strings.TrimSpace(term)
	s.applyLocked()
	v := s.viewLocked()
	s.mu.Unlock()
	s.render.Render(v)
}

// SetSearch applies term immediately and drops any pending search.
func (s *Store) SetSearch(term string) {
	s.update(func() {
		s.cancelPendingLocked()
		s.search = strings.TrimSpace(term)
	})
}

// ClearSearch cancels any pending search and shows every article again.
func (s *Store) ClearSearch() {
	s.update(func() {
		s.cancelPendingLocked()
		s.search = ""
	})
}

// cancelPendingLocked stops the debounce timer and invalidates a callback
// that may already be waiting for the lock.
func (s *Store) cancelPendingLocked() {
	s.searchGen++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// SetRegion selects a region; "" means all regions.
func (s *Store) SetRegion(region string) {
	s.update(func() { s.region = region })
}

// SetLanguage selects a language; "" means all languages.
func (s *Store) SetLanguage(language string) {
	s.update(func() { s.language = language })
}

// LoadMore shows another page of cards.
func (s *Store) LoadMore() {
	s.mu.Lock()
	s.displayed += PageSize
	v := s.viewLocked()
	s.mu.Unlock()
	s.render.Render(v)
}

// Next advances the carousel, stopping at the last featured article.
func (s *Store) Next() { s.moveCarousel(1) }

// Prev moves the carousel back, stopping at the first featured article.
func (s *Store) Prev() { s.moveCarousel(-1) }

// Swipe turns a horizontal touch gesture into Next or Prev.
func (s *Store) Swipe(startX, endX float64) {
	diff := startX - endX
	if diff > SwipeThreshold {
		s.Next()
	} else if diff < -SwipeThreshold {
		s.Prev()
	}
}

// Open shows article id in the modal. Unknown ids are ignored.
func (s *Store) Open(id int64) {
	s.mu.Lock()
	if _, ok := find(s.all, id); !ok {
		s.mu.Unlock()
		return
	}
	s.openID = id
	v := s.viewLocked()
	s.mu.Unlock()
	s.render.Render(v)
}

// Close hides the modal.
func (s *Store) Close() {
	s.mu.Lock()
	s.openID = 0
	v := s.viewLocked()
	s.mu.Unlock()
	s.render.Render(v)
}

// View returns the current view model.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Store) moveCarousel(delta int) {
	s.mu.Lock()
	last := s.maxCarouselLocked()
	if last < 0 {
		s.mu.Unlock()
		return
	}
	pos := s.carouselPos + delta
	if pos < 0 {
		pos = 0
	}
	if pos > last {
		pos = last
	}
	s.carouselPos = pos
	v := s.viewLocked()
	s.mu.Unlock()
	s.render.Render(v)
}

// maxCarouselLocked returns the last valid carousel index, or -1 when there
// are no featured articles.
func (s *Store) maxCarouselLocked() int {
	return len(featured(s.all)) - 1
}

// update mutates a filter under the lock, re-filters and renders.
func (s *Store) update(mutate func()) {
	s.mu.Lock()
	mutate()
	s.applyLocked()
	v := s.viewLocked()
	s.mu.Unlock()
	s.render.Render(v)
}

// applyLocked recomputes the filtered list and resets paging.
func (s *Store) applyLocked() {
	s.filtered = Filter(s.all, s.search, s.region, s.language)
	s.displayed = PageSize
}

// Filter keeps the articles whose title or content contains term (case
// insensitive) and whose region and language equal the selections. Empty
// criteria match everything.
func Filter(articles []api.Article, term, region, language string) []api.Article {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]api.Article, 0, len(articles))
	for _, a := range articles {
		if term != "" &&
			!strings.Contains(strings.ToLower(a.Title), term) &&
			!strings.Contains(strings.ToLower(a.Content), term) {
			continue
		}
		if region != "" && a.Region != region {
			continue
		}
		if language != "" && a.Language != language {
			continue
		}
		out = append(out, a)
	}
	return out
}

func featured(articles []api.Article) []api.Article {
	var out []api.Article
	for _, a := range articles {
		if a.Featured {
			out = append(out, a)
		}
	}
	return out
}

func find(articles []api.Article, id int64) (api.Article, bool) {
	for _, a := range articles {
		if a.ID == id {
			return a, true
		}
	}
	return api.Article{}, false
}
