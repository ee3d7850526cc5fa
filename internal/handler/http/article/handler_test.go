package article_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-agency/internal/domain/entity"
	"news-agency/internal/handler/http/article"
	hauth "news-agency/internal/handler/http/auth"
	authservice "news-agency/internal/service/auth"
	artUC "news-agency/internal/usecase/article"
)

func day(s string) time.Time {
	t, _ := time.Parse(entity.DateLayout, s)
	return t
}

func seedRows() []*entity.Article {
	base := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	mk := func(title, region, lang string, st entity.Status, h int) *entity.Article {
		return &entity.Article{
			Title: title, Content: title + " body", Region: region, Language: lang,
			Date: day("2024-01-10"), Status: st,
			CreatedAt: base.Add(time.Duration(h) * time.Hour),
			UpdatedAt: base.Add(time.Duration(h) * time.Hour),
		}
	}
	return []*entity.Article{
		mk("Budget", "Telangana", "English", entity.StatusPublished, 1),
		mk("Monsoon", "Kerala", "Malayalam", entity.StatusPublished, 2),
		mk("Elections", "National", "Hindi", entity.StatusPublished, 3),
		mk("Harvest", "Karnataka", "Kannada", entity.StatusPublished, 4),
		mk("Draft piece", "Kerala", "English", entity.StatusDraft, 5),
	}
}

func newServer(repo *memRepo) http.Handler {
	r := chi.NewRouter()
	article.Register(r, article.Handler{
		Svc:    &artUC.Service{Repo: repo},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, rd))

	var out map[string]any
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	}
	return rr.Code, out
}

func titles(t *testing.T, body map[string]any) []string {
	t.Helper()
	list, ok := body["articles"].([]any)
	require.True(t, ok, "articles must be a list")
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, item.(map[string]any)["title"].(string))
	}
	return out
}

/* ───────── 読み取り ───────── */

func TestGet_PublishedWithFeatured(t *testing.T) {
	h := newServer(newMemRepo(seedRows()...))

	for _, target := range []string{"/articles", "/articles?action=get", "/articles?action=bogus"} {
		code, body := do(t, h, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, code, target)
		assert.Equal(t, true, body["success"])
		if diff := cmp.Diff([]string{"Harvest", "Elections", "Monsoon", "Budget"}, titles(t, body)); diff != "" {
			t.Errorf("%s order mismatch (-want +got):\n%s", target, diff)
		}

		list := body["articles"].([]any)
		for i, item := range list {
			m := item.(map[string]any)
			assert.Equal(t, i < 3, m["featured"], "featured flag of row %d", i)
			assert.Equal(t, "2024-01-10", m["date"])
			assert.NotContains(t, m, "status")
		}
	}
}

func TestGet_EmptyListIsArray(t *testing.T) {
	code, body := do(t, newServer(newMemRepo()), http.MethodGet, "/articles", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{}, body["articles"])
}

func TestGetAll_Filters(t *testing.T) {
	h := newServer(newMemRepo(seedRows()...))

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Draft piece", "Harvest", "Elections", "Monsoon", "Budget"}},
		{"&region=Kerala", []string{"Draft piece", "Monsoon"}},
		{"&region=Kerala&language=English", []string{"Draft piece"}},
		{"&status=published&region=Kerala", []string{"Monsoon"}},
		{"&status=DRAFT", []string{"Draft piece"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			code, body := do(t, h, http.MethodGet, "/articles?action=get_all"+tt.query, "")
			require.Equal(t, http.StatusOK, code)
			if diff := cmp.Diff(tt.want, titles(t, body)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	code, body := do(t, h, http.MethodGet, "/articles?action=get_all", "")
	require.Equal(t, http.StatusOK, code)
	first := body["articles"].([]any)[0].(map[string]any)
	assert.Equal(t, "draft", first["status"])
	assert.Contains(t, first, "updated_at")
	assert.NotContains(t, first, "featured")
}

func TestGetAll_InvalidStatus(t *testing.T) {
	code, body := do(t, newServer(newMemRepo(seedRows()...)), http.MethodGet, "/articles?action=get_all&status=deleted", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
}

func TestFilters(t *testing.T) {
	code, body := do(t, newServer(newMemRepo(seedRows()...)), http.MethodGet, "/articles?action=filters", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"Karnataka", "Kerala", "National", "Telangana"}, body["regions"])
	assert.Equal(t, []any{"English", "Hindi", "Kannada", "Malayalam"}, body["languages"])

	code, body = do(t, newServer(newMemRepo()), http.MethodGet, "/articles?action=filters", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{}, body["regions"])
	assert.Equal(t, []any{}, body["languages"])
}

func TestSearchAndStats(t *testing.T) {
	h := newServer(newMemRepo(seedRows()...))

	code, body := do(t, h, http.MethodGet, "/articles?action=search&q=MONSOON", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"Monsoon"}, titles(t, body))

	code, body = do(t, h, http.MethodGet, "/articles?action=search&q=+", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Search term is required", body["message"])

	code, body = do(t, h, http.MethodGet, "/articles?action=stats", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{
		"total": 5.0, "published": 4.0, "draft": 1.0, "pending": 0.0, "archived": 0.0,
	}, body["stats"])
}

func TestReads_StorageFailure(t *testing.T) {
	repo := newMemRepo(seedRows()...)
	repo.err = errors.New("connection refused: postgres://u:hunter2@db/x")
	h := newServer(repo)

	tests := map[string]string{
		"/articles":                   "Failed to fetch articles",
		"/articles?action=get_all":    "Failed to fetch articles",
		"/articles?action=filters":    "Failed to fetch filter options",
		"/articles?action=search&q=x": "Failed to fetch articles",
		"/articles?action=stats":      "Failed to fetch article statistics",
	}
	for target, msg := range tests {
		code, body := do(t, h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusInternalServerError, code, target)
		assert.Equal(t, map[string]any{"success": false, "message": msg}, body, target)
	}
}

/* ───────── 作成 ───────── */

const validCreate = `{"action":"create","title":"  New bridge  ","content":"Opened today","region":"Telangana","language":"Telugu","date":"2024-02-01"}`

func TestCreate(t *testing.T) {
	repo := newMemRepo(seedRows()...)
	h := newServer(repo)

	code, body := do(t, h, http.MethodPost, "/articles", validCreate)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Article created successfully", body["message"])
	assert.Equal(t, 6.0, body["id"])

	stored := repo.find(6)
	require.NotNil(t, stored)
	assert.Equal(t, "New bridge", stored.Title)
	assert.Equal(t, entity.StatusPublished, stored.Status)
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"malformed json", `{"action":`, "Invalid request data"},
		{"wrong action", `{"action":"update","title":"x"}`, "Invalid request data"},
		{"missing action", `{"title":"x"}`, "Invalid request data"},
		{"blank title", `{"action":"create","title":"   ","content":"c","region":"r","language":"l","date":"2024-01-01"}`, "All fields are required"},
		{"missing date", `{"action":"create","title":"t","content":"c","region":"r","language":"l"}`, "All fields are required"},
		{"bad date", `{"action":"create","title":"t","content":"c","region":"r","language":"l","date":"01/02/2024"}`, "Date must use the YYYY-MM-DD format"},
		{"title too long", `{"action":"create","title":"` + strings.Repeat("a", 256) + `","content":"c","region":"r","language":"l","date":"2024-01-01"}`, "Title cannot exceed 255 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			code, body := do(t, newServer(repo), http.MethodPost, "/articles", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, map[string]any{"success": false, "message": tt.msg}, body)
			assert.Empty(t, repo.rows, "nothing may be written")
		})
	}
}

func TestCreate_StorageFailure(t *testing.T) {
	repo := newMemRepo()
	repo.err = errors.New("disk full")
	code, body := do(t, newServer(repo), http.MethodPost, "/articles", validCreate)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to create article", body["message"])
}

/* ───────── 更新・状態変更 ───────── */

func TestUpdate(t *testing.T) {
	repo := newMemRepo(seedRows()...)
	h := newServer(repo)

	code, body := do(t, h, http.MethodPut, "/articles",
		`{"action":"update","id":2,"title":"Monsoon arrives","content":"Heavy rain","region":"Kerala","language":"English","date":"2024-01-11"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"success": true, "message": "Article updated successfully"}, body)
	assert.Equal(t, "Monsoon arrives", repo.find(2).Title)
	assert.Equal(t, "English", repo.find(2).Language)

	// 文字列の id も受け付ける
	code, _ = do(t, h, http.MethodPut, "/articles",
		`{"action":"update","id":"2","title":"Monsoon","content":"Rain","region":"Kerala","language":"English","date":"2024-01-11"}`)
	assert.Equal(t, http.StatusOK, code)
}

func TestUpdate_Rejections(t *testing.T) {
	fields := `"title":"t","content":"c","region":"r","language":"l","date":"2024-01-01"`
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"unknown id", `{"action":"update","id":99,` + fields + `}`, "Article not found or no changes made"},
		{"missing id", `{"action":"update",` + fields + `}`, "All fields are required"},
		{"missing field", `{"action":"update","id":1,"title":"t"}`, "All fields are required"},
		{"wrong action", `{"action":"create","id":1,` + fields + `}`, "Invalid request data"},
		{"malformed", `nope`, "Invalid request data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, newServer(newMemRepo(seedRows()...)), http.MethodPut, "/articles", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.msg, body["message"])
		})
	}
}

func TestSetStatus(t *testing.T) {
	repo := newMemRepo(seedRows()...)
	h := newServer(repo)

	code, body := do(t, h, http.MethodPut, "/articles", `{"action":"set_status","id":1,"status":"archived"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Article status updated successfully", body["message"])
	assert.Equal(t, entity.StatusArchived, repo.find(1).Status)

	code, body = do(t, h, http.MethodPut, "/articles", `{"action":"set_status","id":1,"status":"gone"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])

	code, body = do(t, h, http.MethodPut, "/articles", `{"action":"set_status","status":"draft"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Article ID is required", body["message"])

	code, body = do(t, h, http.MethodPut, "/articles", `{"action":"set_status","id":42,"status":"draft"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Article not found", body["message"])
}

/* ───────── 削除 ───────── */

func TestDelete(t *testing.T) {
	repo := newMemRepo(seedRows()...)
	h := newServer(repo)

	code, body := do(t, h, http.MethodDelete, "/articles", `{"action":"delete","id":3}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"success": true, "message": "Article deleted successfully"}, body)
	assert.Nil(t, repo.find(3))

	code, body = do(t, h, http.MethodDelete, "/articles", `{"action":"delete","id":3}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Article not found", body["message"])

	code, body = do(t, h, http.MethodDelete, "/articles", `{"action":"delete"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Article ID is required", body["message"])

	code, body = do(t, h, http.MethodDelete, "/articles", `{"action":"remove","id":1}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request data", body["message"])

	repo.err = errors.New("timeout")
	code, body = do(t, h, http.MethodDelete, "/articles", `{"action":"delete","id":1}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to delete article", body["message"])
}

func TestMutationLogs_NameTheAdmin(t *testing.T) {
	svc := authservice.NewAuthService(hauth.NewBasicAuthProvider("editor", "s3cret-password"), "0123456789abcdef0123456789abcdef", time.Hour)
	token, _, err := svc.Login(context.Background(), authservice.Credentials{Username: "editor", Password: "s3cret-password"})
	require.NoError(t, err)

	var logs bytes.Buffer
	r := chi.NewRouter()
	article.Register(r, article.Handler{
		Svc:    &artUC.Service{Repo: newMemRepo(seedRows()...)},
		Logger: slog.New(slog.NewJSONHandler(&logs, nil)),
	}, hauth.Guard(svc, slog.New(slog.NewTextHandler(io.Discard, nil))))

	req := httptest.NewRequest(http.MethodDelete, "/articles", strings.NewReader(`{"action":"delete","id":2}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry), logs.String())
	assert.Equal(t, "Article deleted successfully", entry["msg"])
	assert.Equal(t, "editor", entry["user"])
	assert.Equal(t, float64(2), entry["id"])
}

func TestMutationLogs_NoUserWithoutGuard(t *testing.T) {
	var logs bytes.Buffer
	r := chi.NewRouter()
	article.Register(r, article.Handler{
		Svc:    &artUC.Service{Repo: newMemRepo(seedRows()...)},
		Logger: slog.New(slog.NewJSONHandler(&logs, nil)),
	})

	code, _ := do(t, r, http.MethodDelete, "/articles", `{"action":"delete","id":2}`)
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, logs.String(), `"user"`)
}

/* ───────── その他 ───────── */

func TestMethodNotAllowed(t *testing.T) {
	code, body := do(t, newServer(newMemRepo()), http.MethodPatch, "/articles", "")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, map[string]any{"success": false, "message": "Method not allowed"}, body)
}

func TestOptions(t *testing.T) {
	rr := httptest.NewRecorder()
	newServer(newMemRepo()).ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/articles", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestFlexID(t *testing.T) {
	tests := map[string]article.FlexID{
		`7`:     7,
		`"12"`:  12,
		`""`:    0,
		`null`:  0,
		`"abc"`: 0,
	}
	for in, want := range tests {
		var id article.FlexID
		require.NoError(t, json.Unmarshal([]byte(in), &id), in)
		assert.Equal(t, want, id, in)
	}
}
