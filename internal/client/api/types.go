// Package api is the HTTP client of the articles API shared by the reader
// page, the newsroom console and the newsdesk CLI.
package api

import (
	"fmt"
	"net/http"
	"time"
)

// DateLayout is the wire format of Article.Date.
const DateLayout = "2006-01-02"

// Article is an article as the API returns it. Public listings fill
// Featured; admin listings fill Status and UpdatedAt.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	Category  string    `json:"category,omitempty"`
	Content   string    `json:"content"`
	Region    string    `json:"region"`
	Language  string    `json:"language"`
	Date      string    `json:"date"`
	Status    string    `json:"status,omitempty"`
	Featured  bool      `json:"featured,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ArticleInput is the editable part of an article.
type ArticleInput struct {
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	Category string `json:"category,omitempty"`
	Content  string `json:"content"`
	Region   string `json:"region"`
	Language string `json:"language"`
	Date     string `json:"date"`
}

// ListFilter narrows All. Empty fields do not restrict.
type ListFilter struct {
	Region   string
	Language string
	Status   string
}

// FilterOptions are the distinct regions and languages known to the API.
type FilterOptions struct {
	Regions   []string `json:"regions"`
	Languages []string `json:"languages"`
}

// Stats counts articles by status.
type Stats struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Draft     int64 `json:"draft"`
	Pending   int64 `json:"pending"`
	Archived  int64 `json:"archived"`
}

// Error is a failed API call: a non-2xx status or a body with success=false.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}
