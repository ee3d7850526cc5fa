package cli

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"news-agency/internal/client/api"
)

// fakeAPI is a small in-memory articles API.
type fakeAPI struct {
	mu       sync.Mutex
	articles []api.Article
	nextID   int64
	auth     []string
	bodies   []map[string]any
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		nextID: 3,
		articles: []api.Article{
			{ID: 1, Title: "Metro Line Opens", Content: "Hyderabad commuters cheer.", Region: "Telangana", Language: "English", Date: "2024-01-15", Status: "published"},
			{ID: 2, Title: "Budget Session", Content: "Parliament convenes.", Region: "National", Language: "Hindi", Date: "2024-01-14", Status: "draft"},
		},
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth = append(f.auth, r.Header.Get("Authorization"))

	reply := func(code int, v map[string]any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(v)
	}
	fail := func(code int, msg string) { reply(code, map[string]any{"success": false, "message": msg}) }

	if r.URL.Path == "/auth/token" {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "editor" || pass != "secret" {
			fail(http.StatusUnauthorized, "Invalid credentials")
			return
		}
		reply(http.StatusOK, map[string]any{"success": true, "token": "jwt-token", "expires_at": "2026-01-01T10:00:00Z"})
		return
	}

	if r.Method == http.MethodGet {
		q := r.URL.Query()
		switch q.Get("action") {
		case "filters":
			reply(http.StatusOK, map[string]any{"success": true, "regions": []string{"National", "Telangana"}, "languages": []string{"English", "Hindi"}})
		case "stats":
			reply(http.StatusOK, map[string]any{"success": true, "stats": map[string]int{"total": len(f.articles), "published": 1, "draft": 1}})
		case "search":
			out := []api.Article{}
			for _, a := range f.articles {
				if strings.Contains(strings.ToLower(a.Title+" "+a.Content), strings.ToLower(q.Get("q"))) {
					out = append(out, a)
				}
			}
			reply(http.StatusOK, map[string]any{"success": true, "articles": out})
		default:
			out := []api.Article{}
			for _, a := range f.articles {
				if s := q.Get("status"); s != "" && a.Status != s {
					continue
				}
				out = append(out, a)
			}
			reply(http.StatusOK, map[string]any{"success": true, "articles": out})
		}
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		fail(http.StatusBadRequest, "Invalid request data")
		return
	}
	f.bodies = append(f.bodies, body)
	str := func(k string) string { s, _ := body[k].(string); return s }
	id, _ := body["id"].(float64)

	switch str("action") {
	case "create":
		f.nextID++
		f.articles = append(f.articles, api.Article{
			ID: f.nextID, Title: str("title"), Content: str("content"),
			Region: str("region"), Language: str("language"), Date: str("date"), Status: "published",
		})
		reply(http.StatusOK, map[string]any{"success": true, "message": "Article created successfully", "id": f.nextID})
	case "update", "set_status":
		for i := range f.articles {
			if f.articles[i].ID == int64(id) {
				if str("action") == "set_status" {
					f.articles[i].Status = str("status")
				} else {
					f.articles[i].Title = str("title")
					f.articles[i].Content = str("content")
					f.articles[i].Date = str("date")
				}
				reply(http.StatusOK, map[string]any{"success": true, "message": "Article updated successfully"})
				return
			}
		}
		fail(http.StatusBadRequest, "Article not found or no changes made")
	case "delete":
		for i := range f.articles {
			if f.articles[i].ID == int64(id) {
				f.articles = append(f.articles[:i], f.articles[i+1:]...)
				reply(http.StatusOK, map[string]any{"success": true, "message": "Article deleted successfully"})
				return
			}
		}
		fail(http.StatusBadRequest, "Article not found")
	default:
		fail(http.StatusBadRequest, "Invalid request data")
	}
}

func (f *fakeAPI) article(id int64) (api.Article, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.articles {
		if a.ID == id {
			return a, true
		}
	}
	return api.Article{}, false
}

func (f *fakeAPI) mutationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bodies)
}
