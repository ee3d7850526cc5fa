// Package admin is the state machine behind the newsroom console: the
// article table with search, dashboard counters, and the create, edit and
// delete forms.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"news-agency/internal/client/api"
	"news-agency/internal/client/notify"
	"news-agency/internal/client/sample"
)

var (
	// ErrInvalidForm is returned when Validate reports errors; see View.FormErrors.
	ErrInvalidForm = errors.New("admin: invalid form")
	// ErrNotEditing is returned by Update when no article is being edited.
	ErrNotEditing = errors.New("admin: no article is being edited")
	// ErrUnknownArticle is returned by BeginEdit for ids not in the table.
	ErrUnknownArticle = errors.New("admin: article not found")
)

const msgSampleFallback = "Using sample data. Check your API connection."

// Source is the admin side of the articles API.
type Source interface {
	All(ctx context.Context, f api.ListFilter) ([]api.Article, error)
	Filters(ctx context.Context) (api.FilterOptions, error)
	Create(ctx context.Context, in api.ArticleInput) (int64, error)
	Update(ctx context.Context, id int64, in api.ArticleInput) error
	SetStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
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

// WithLogger sets the logger for API failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock sets the time source used for "today". Its location decides
// calendar days.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Stats are the dashboard counters.
type Stats struct {
	Total     int
	Today     int
	Regions   int
	Languages int
}

// Store holds the console state. All methods are safe for concurrent use.
type Store struct {
	src      Source
	render   Renderer
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time

	mu         sync.Mutex
	all        []api.Article
	regions    []string
	languages  []string
	search     string
	editingID  int64
	editForm   Form
	formErrors FormErrors
	notice     *notify.Message
}

// NewStore returns an empty store. Call Load to populate it.
func NewStore(src Source, r Renderer, opts ...Option) *Store {
	s := &Store{
		src:      src,
		render:   r,
		notifier: notify.Discard,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.render == nil {
		s.render = RenderFunc(func(View) {})
	}
	return s
}

// Load fetches every article and the filter options concurrently. When the
// articles cannot be fetched the built-in sample is shown with a warning.
func (s *Store) Load(ctx context.Context) {
	var (
		articles []api.Article
		opts     api.FilterOptions
		artErr   error
		optErr   error
	)
	var g errgroup.Group
	g.Go(func() error {
		articles, artErr = s.src.All(ctx, api.ListFilter{})
		return nil
	})
	g.Go(func() error {
		opts, optErr = s.src.Filters(ctx)
		return nil
	})
	_ = g.Wait()

	if artErr != nil {
		s.logger.Warn("failed to load admin articles, using sample", slog.Any("error", artErr))
		articles = sample.Admin()
	}
	if optErr != nil {
		s.logger.Warn("failed to load filter options", slog.Any("error", optErr))
	}

	s.mu.Lock()
	s.all = articles
	s.regions = mergeOptions(sample.AdminRegions(), opts.Regions)
	s.languages = mergeOptions(sample.AdminLanguages(), opts.Languages)
	if artErr != nil {
		s.notice = &notify.Message{Level: notify.Warning, Text: msgSampleFallback}
	}
	v := s.viewLocked()
	s.mu.Unlock()

	if artErr != nil {
		s.notifier.Notify(notify.Warning, msgSampleFallback)
	}
	s.render.Render(v)
}

// Reload is Load under the name the mutations use.
func (s *Store) Reload(ctx context.Context) { s.Load(ctx) }

// SetSearch filters the table by title, content, region or language.
func (s *Store) SetSearch(term string) {
	s.mu.Lock()
	s.search = term
	v := s.viewLocked()
	s.mu.Unlock()
	s.render.Render(v)
}

// Stats returns the dashboard counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked()
}

// Article returns the row with id.
func (s *Store) Article(id int64) (api.Article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.all {
		if a.ID == id {
			return a, true
		}
	}
	return api.Article{}, false
}

// Create validates f and stores it as a new article.
func (s *Store) Create(ctx context.Context, f Form) (int64, error) {
	if !s.check(f) {
		return 0, ErrInvalidForm
	}
	id, err := s.src.Create(ctx, f.Input())
	if err != nil {
		s.failed(err, "create", "Failed to create article", "Error creating article. Please try again.")
		return 0, err
	}
	s.succeeded(ctx, "Article created successfully!")
	return id, nil
}

// BeginEdit opens article id in the edit form.
func (s *Store) BeginEdit(id int64) (Form, error) {
	a, ok := s.Article(id)
	if !ok {
		s.emit(notify.Error, "Article not found")
		return Form{}, ErrUnknownArticle
	}
	s.mu.Lock()
	s.editingID = id
	s.editForm = FormFrom(a)
	s.formErrors = nil
	v := s.viewLocked()
	s.mu.Unlock()
	s.render.Render(v)
	return FormFrom(a), nil
}

// CancelEdit closes the edit form without saving.
func (s *Store) CancelEdit() {
	s.mu.Lock()
	s.editingID = 0
	s.editForm = Form{}
	s.formErrors = nil
	v := s.viewLocked()
	s.mu.Unlock()
	s.render.Render(v)
}

// Update validates f and saves it over the article being edited.
func (s *Store) Update(ctx context.Context, f Form) error {
	s.mu.Lock()
	id := s.editingID
	s.mu.Unlock()
	if id == 0 {
		return ErrNotEditing
	}
	if !s.check(f) {
		return ErrInvalidForm
	}
	if err := s.src.Update(ctx, id, f.Input()); err != nil {
		s.failed(err, "update", "Failed to update article", "Error updating article. Please try again.")
		return err
	}
	s.mu.Lock()
	s.editingID = 0
	s.editForm = Form{}
	s.mu.Unlock()
	s.succeeded(ctx, "Article updated successfully!")
	return nil
}

// SetStatus moves article id to status.
func (s *Store) SetStatus(ctx context.Context, id int64, status string) error {
	if err := s.src.SetStatus(ctx, id, status); err != nil {
		s.failed(err, "set_status", "Failed to update article", "Error updating article. Please try again.")
		return err
	}
	s.succeeded(ctx, "Article status updated successfully!")
	return nil
}

// Delete removes article id. Asking the user for confirmation is the
// caller's job.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.src.Delete(ctx, id); err != nil {
		s.failed(err, "delete", "Failed to delete article", "Error deleting article. Please try again.")
		return err
	}
	s.succeeded(ctx, "Article deleted successfully!")
	return nil
}

// View returns the current view model.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// check validates f and publishes the result as FormErrors.
func (s *Store) check(f Form) bool {
	errs := Validate(f, s.now())
	s.mu.Lock()
	if len(errs) == 0 {
		s.formErrors = nil
	} else {
		s.formErrors = errs
	}
	v := s.viewLocked()
	s.mu.Unlock()
	s.render.Render(v)
	return len(errs) == 0
}

// failed reports a rejected mutation: the server's message when it sent
// one, rejected when it did not, and unreachable when the call never
// completed.
func (s *Store) failed(err error, op, rejected, unreachable string) {
	s.logger.Error("article mutation failed", slog.String("op", op), slog.Any("error", err))
	var apiErr *api.Error
	msg := unreachable
	if errors.As(err, &apiErr) {
		msg = api.Message(err, rejected)
	}
	s.emit(notify.Error, msg)
}

func (s *Store) succeeded(ctx context.Context, msg string) {
	s.emit(notify.Success, msg)
	s.Reload(ctx)
}

func (s *Store) emit(level notify.Level, msg string) {
	s.mu.Lock()
	s.notice = &notify.Message{Level: level, Text: msg}
	v := s.viewLocked()
	s.mu.Unlock()
	s.notifier.Notify(level, msg)
	s.render.Render(v)
}

func (s *Store) statsLocked() Stats {
	now := s.now()
	st := Stats{
		Total:     len(s.all),
		Regions:   len(s.regions),
		Languages: len(s.languages),
	}
	for _, a := range s.all {
		if day, ok := createdDay(a, now.Location()); ok && sameDay(day, now) {
			st.Today++
		}
	}
	return st
}

// createdDay is created_at in loc, falling back to the article date.
func createdDay(a api.Article, loc *time.Location) (time.Time, bool) {
	if !a.CreatedAt.IsZero() {
		return a.CreatedAt.In(loc), true
	}
	d, err := time.ParseInLocation(api.DateLayout, a.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Search keeps articles whose title, content, region or language contains
// term, ignoring case.
func Search(articles []api.Article, term string) []api.Article {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]api.Article(nil), articles...)
	}
	var out []api.Article
	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.Title), term) ||
			strings.Contains(strings.ToLower(a.Content), term) ||
			strings.Contains(strings.ToLower(a.Region), term) ||
			strings.Contains(strings.ToLower(a.Language), term) {
			out = append(out, a)
		}
	}
	return out
}

// mergeOptions appends the values of extra missing from base, in order.
func mergeOptions(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, v := range list {
			if _, dup := seen[v]; dup || v == "" {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
