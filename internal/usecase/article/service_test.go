package article_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"news-agency/internal/domain/entity"
	"news-agency/internal/repository"
	artUC "news-agency/internal/usecase/article"
)

/* ───────── スタブ実装 ───────── */

// 最小限のインメモリ ArticleRepository
type stubRepo struct {
	data   map[int64]*entity.Article
	nextID int64
	err    error // 強制的にエラーを返したいとき用
	clock  time.Time
}

func newStub() *stubRepo {
	return &stubRepo{
		data:   map[int64]*entity.Article{},
		nextID: 1,
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// 新しい順 (created_at DESC)
func (s *stubRepo) sorted(keep func(*entity.Article) bool) []*entity.Article {
	out := []*entity.Article{}
	for _, v := range s.data {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *stubRepo) ListByStatus(_ context.Context, st entity.Status) ([]*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(func(a *entity.Article) bool { return a.Status == st }), nil
}
func (s *stubRepo) List(_ context.Context, f repository.ArticleFilters) ([]*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(func(a *entity.Article) bool {
		return (f.Region == "" || a.Region == f.Region) &&
			(f.Language == "" || a.Language == f.Language) &&
			(f.Status == "" || a.Status == f.Status)
	}), nil
}
func (s *stubRepo) Search(_ context.Context, kw string) ([]*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	kw = strings.ToLower(kw)
	return s.sorted(func(a *entity.Article) bool {
		return strings.Contains(strings.ToLower(a.Title), kw) || strings.Contains(strings.ToLower(a.Content), kw)
	}), nil
}
func (s *stubRepo) distinct(pick func(*entity.Article) string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	seen := map[string]bool{}
	var out []string
	for _, a := range s.data {
		if v := pick(a); v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out, nil
}
func (s *stubRepo) DistinctRegions(_ context.Context) ([]string, error) {
	return s.distinct(func(a *entity.Article) string { return a.Region })
}
func (s *stubRepo) DistinctLanguages(_ context.Context) ([]string, error) {
	return s.distinct(func(a *entity.Article) string { return a.Language })
}
func (s *stubRepo) Stats(_ context.Context) (repository.ArticleStats, error) {
	var st repository.ArticleStats
	for _, a := range s.data {
		st.Total++
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
	return st, s.err
}
func (s *stubRepo) Create(_ context.Context, a *entity.Article) error {
	if s.err != nil {
		return s.err
	}
	a.ID = s.nextID
	s.nextID++
	s.clock = s.clock.Add(time.Minute)
	a.CreatedAt, a.UpdatedAt = s.clock, s.clock
	s.data[a.ID] = a
	return nil
}
func (s *stubRepo) Update(_ context.Context, a *entity.Article) error {
	if s.err != nil {
		return s.err
	}
	old, ok := s.data[a.ID]
	if !ok {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	a.Status, a.CreatedAt = old.Status, old.CreatedAt
	s.clock = s.clock.Add(time.Minute)
	a.UpdatedAt = s.clock
	s.data[a.ID] = a
	return nil
}
func (s *stubRepo) SetStatus(_ context.Context, id int64, st entity.Status) error {
	if s.err != nil {
		return s.err
	}
	a, ok := s.data[id]
	if !ok {
		return fmt.Errorf("SetStatus: %w", entity.ErrNotFound)
	}
	a.Status = st
	return nil
}
func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[id]; !ok {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	delete(s.data, id)
	return nil
}

/* ───────── ヘルパ ───────── */

func validInput(title string) artUC.CreateInput {
	return artUC.CreateInput{
		Title:    title,
		Content:  "Body of " + title,
		Region:   "National",
		Language: "English",
		Date:     "2024-01-15",
	}
}

func seed(t *testing.T, svc *artUC.Service, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		a, err := svc.Create(context.Background(), validInput(fmt.Sprintf("Story %d", i+1)))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		ids = append(ids, a.ID)
	}
	return ids
}

/* ───────── テスト本体 ───────── */

func TestService_Create_TrimsAndPublishes(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo}

	in := validInput("  Padded Title  ")
	in.Region = " Kerala "
	a, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if a.ID == 0 {
		t.Fatal("Create did not assign an id")
	}
	stored := repo.data[a.ID]
	if stored.Title != "Padded Title" || stored.Region != "Kerala" {
		t.Fatalf("fields not trimmed: %+v", stored)
	}
	if stored.Status != entity.StatusPublished {
		t.Fatalf("status = %q, want published", stored.Status)
	}
}

func TestService_Create_Validation(t *testing.T) {
	tooLong := validInput(strings.Repeat("t", 256))
	badDate := validInput("ok")
	badDate.Date = "yesterday"
	blankContent := validInput("ok")
	blankContent.Content = "   "

	tests := []struct {
		name      string
		in        artUC.CreateInput
		wantReq   bool
		wantField string
	}{
		{name: "blank content", in: blankContent, wantReq: true},
		{name: "missing date", in: artUC.CreateInput{Title: "a", Content: "b", Region: "c", Language: "d"}, wantReq: true},
		{name: "title too long", in: tooLong, wantField: "title"},
		{name: "bad date", in: badDate, wantField: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStub()
			svc := artUC.Service{Repo: repo}
			_, err := svc.Create(context.Background(), tt.in)
			if tt.wantReq && !errors.Is(err, artUC.ErrRequiredFields) {
				t.Fatalf("want ErrRequiredFields, got %v", err)
			}
			if tt.wantField != "" {
				var ve *entity.ValidationError
				if !errors.As(err, &ve) || ve.Field != tt.wantField {
					t.Fatalf("want ValidationError on %q, got %v", tt.wantField, err)
				}
			}
			if len(repo.data) != 0 {
				t.Fatalf("failed create wrote %d rows", len(repo.data))
			}
		})
	}
}

func TestService_Create_RepoError(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("db down")
	svc := artUC.Service{Repo: repo}

	_, err := svc.Create(context.Background(), validInput("x"))
	if !errors.Is(err, repo.err) {
		t.Fatalf("want wrapped repo error, got %v", err)
	}
}

func TestService_ListPublished_FeaturedFirstThree(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo}
	ids := seed(t, &svc, 5)
	// 下書きは公開一覧に出ない
	if err := svc.SetStatus(context.Background(), ids[4], "draft"); err != nil {
		t.Fatal(err)
	}

	got, err := svc.ListPublished(context.Background())
	if err != nil {
		t.Fatalf("ListPublished err=%v", err)
	}
	var gotIDs []int64
	var featured []bool
	for _, p := range got {
		gotIDs = append(gotIDs, p.Article.ID)
		featured = append(featured, p.Featured)
	}
	if diff := cmp.Diff([]int64{ids[3], ids[2], ids[1], ids[0]}, gotIDs); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{true, true, true, false}, featured); diff != "" {
		t.Fatalf("featured mismatch (-want +got):\n%s", diff)
	}
}

func TestService_ListPublished_FewerThanThree(t *testing.T) {
	svc := artUC.Service{Repo: newStub()}
	seed(t, &svc, 2)

	got, err := svc.ListPublished(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("ListPublished err=%v len=%d", err, len(got))
	}
	for _, p := range got {
		if !p.Featured {
			t.Fatalf("article %d should be featured", p.Article.ID)
		}
	}
}

func TestService_ListAll_Filters(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo}
	ids := seed(t, &svc, 3)
	repo.data[ids[0]].Region = "Kerala"
	_ = svc.SetStatus(context.Background(), ids[1], "archived")

	all, err := svc.ListAll(context.Background(), artUC.ListFilter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("ListAll err=%v len=%d", err, len(all))
	}

	kerala, _ := svc.ListAll(context.Background(), artUC.ListFilter{Region: "Kerala"})
	if len(kerala) != 1 || kerala[0].ID != ids[0] {
		t.Fatalf("region filter returned %v", kerala)
	}

	archived, _ := svc.ListAll(context.Background(), artUC.ListFilter{Status: "ARCHIVED"})
	if len(archived) != 1 || archived[0].ID != ids[1] {
		t.Fatalf("status filter returned %v", archived)
	}

	_, err = svc.ListAll(context.Background(), artUC.ListFilter{Status: "gone"})
	var ve *entity.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError for bad status, got %v", err)
	}
}

func TestService_FilterValues(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo}

	empty, err := svc.FilterValues(context.Background())
	if err != nil {
		t.Fatalf("FilterValues err=%v", err)
	}
	if empty.Regions == nil || empty.Languages == nil {
		t.Fatal("empty table must yield non-nil lists")
	}

	ids := seed(t, &svc, 3)
	repo.data[ids[0]].Region, repo.data[ids[0]].Language = "Telangana", "Telugu"
	repo.data[ids[1]].Region = "Andhra Pradesh"

	got, _ := svc.FilterValues(context.Background())
	want := artUC.FilterOptions{
		Regions:   []string{"Andhra Pradesh", "National", "Telangana"},
		Languages: []string{"English", "Telugu"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Update(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo}
	ids := seed(t, &svc, 1)
	before := *repo.data[ids[0]]

	in := artUC.UpdateInput{ID: ids[0], CreateInput: validInput("Edited")}
	in.Language = "Hindi"
	if err := svc.Update(context.Background(), in); err != nil {
		t.Fatalf("Update err=%v", err)
	}
	after := repo.data[ids[0]]
	if after.Title != "Edited" || after.Language != "Hindi" {
		t.Fatalf("fields not updated: %+v", after)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) || after.UpdatedAt.Before(after.CreatedAt) {
		t.Fatalf("updated_at not refreshed: before=%v after=%v", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestService_Update_Errors(t *testing.T) {
	svc := artUC.Service{Repo: newStub()}

	if err := svc.Update(context.Background(), artUC.UpdateInput{CreateInput: validInput("x")}); !errors.Is(err, artUC.ErrRequiredFields) {
		t.Fatalf("missing id: want ErrRequiredFields, got %v", err)
	}
	if err := svc.Update(context.Background(), artUC.UpdateInput{ID: 1}); !errors.Is(err, artUC.ErrRequiredFields) {
		t.Fatalf("missing fields: want ErrRequiredFields, got %v", err)
	}
	if err := svc.Update(context.Background(), artUC.UpdateInput{ID: 99, CreateInput: validInput("x")}); !errors.Is(err, artUC.ErrArticleNotFound) {
		t.Fatalf("unknown id: want ErrArticleNotFound, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo}
	ids := seed(t, &svc, 2)

	if err := svc.Delete(context.Background(), ids[0]); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if _, ok := repo.data[ids[0]]; ok {
		t.Fatal("article still stored after delete")
	}
	if err := svc.Delete(context.Background(), ids[0]); !errors.Is(err, artUC.ErrArticleNotFound) {
		t.Fatalf("second delete: want ErrArticleNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), 0); !errors.Is(err, artUC.ErrInvalidArticleID) {
		t.Fatalf("zero id: want ErrInvalidArticleID, got %v", err)
	}
	if len(repo.data) != 1 {
		t.Fatalf("unexpected row count %d", len(repo.data))
	}
}

func TestService_SetStatus(t *testing.T) {
	repo := newStub()
	svc := artUC.Service{Repo: repo}
	ids := seed(t, &svc, 1)

	if err := svc.SetStatus(context.Background(), ids[0], "pending"); err != nil {
		t.Fatalf("SetStatus err=%v", err)
	}
	if repo.data[ids[0]].Status != entity.StatusPending {
		t.Fatalf("status = %q", repo.data[ids[0]].Status)
	}

	var ve *entity.ValidationError
	if err := svc.SetStatus(context.Background(), ids[0], "live"); !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if err := svc.SetStatus(context.Background(), 42, "draft"); !errors.Is(err, artUC.ErrArticleNotFound) {
		t.Fatalf("want ErrArticleNotFound, got %v", err)
	}
}

func TestService_Search(t *testing.T) {
	svc := artUC.Service{Repo: newStub()}
	seed(t, &svc, 3)

	got, err := svc.Search(context.Background(), "  story 2 ")
	if err != nil || len(got) != 1 || got[0].Title != "Story 2" {
		t.Fatalf("Search err=%v got=%v", err, got)
	}

	var ve *entity.ValidationError
	if _, err := svc.Search(context.Background(), "   "); !errors.As(err, &ve) {
		t.Fatalf("blank term: want ValidationError, got %v", err)
	}
}

func TestService_Stats(t *testing.T) {
	svc := artUC.Service{Repo: newStub()}
	ids := seed(t, &svc, 4)
	_ = svc.SetStatus(context.Background(), ids[0], "draft")
	_ = svc.SetStatus(context.Background(), ids[1], "archived")

	got, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats err=%v", err)
	}
	want := repository.ArticleStats{Total: 4, Published: 2, Draft: 1, Archived: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
