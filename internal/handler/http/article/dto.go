// Package article serves the /articles endpoint. Reads are selected by the
// "action" query parameter and mutations by the "action" field of the JSON
// body, so one path carries the whole public and admin surface.
package article

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"news-agency/internal/domain/entity"
	"news-agency/internal/repository"
	artUC "news-agency/internal/usecase/article"
)

// PublicDTO is an entry of the public listing.
type PublicDTO struct {
	ID        int64     `json:"id" example:"1"`
	Title     string    `json:"title" example:"State Budget Announced"`
	Author    string    `json:"author" example:"Ravi Kumar"`
	Category  string    `json:"category" example:"Politics"`
	Content   string    `json:"content" example:"The state government announced..."`
	Region    string    `json:"region" example:"Telangana"`
	Language  string    `json:"language" example:"English"`
	Date      string    `json:"date" example:"2024-01-15"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T09:00:00Z"`
	Featured  bool      `json:"featured" example:"true"`
}

// AdminDTO is an entry of the admin listing and of search results.
type AdminDTO struct {
	ID        int64     `json:"id" example:"1"`
	Title     string    `json:"title" example:"State Budget Announced"`
	Author    string    `json:"author" example:"Ravi Kumar"`
	Category  string    `json:"category" example:"Politics"`
	Content   string    `json:"content" example:"The state government announced..."`
	Region    string    `json:"region" example:"Telangana"`
	Language  string    `json:"language" example:"English"`
	Date      string    `json:"date" example:"2024-01-15"`
	Status    string    `json:"status" example:"published"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T09:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-15T09:00:00Z"`
}

// ListResponse wraps a listing.
type ListResponse[T any] struct {
	Success  bool `json:"success" example:"true"`
	Articles []T  `json:"articles"`
}

// FiltersResponse lists the distinct regions and languages in storage.
type FiltersResponse struct {
	Success   bool     `json:"success" example:"true"`
	Regions   []string `json:"regions"`
	Languages []string `json:"languages"`
}

// StatsDTO counts articles by status.
type StatsDTO struct {
	Total     int64 `json:"total" example:"5"`
	Published int64 `json:"published" example:"4"`
	Draft     int64 `json:"draft" example:"1"`
	Pending   int64 `json:"pending" example:"0"`
	Archived  int64 `json:"archived" example:"0"`
}

// StatsResponse wraps StatsDTO.
type StatsResponse struct {
	Success bool     `json:"success" example:"true"`
	Stats   StatsDTO `json:"stats"`
}

// CreatedResponse acknowledges a new article.
type CreatedResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Article created successfully"`
	ID      int64  `json:"id" example:"6"`
}

// MutationRequest is the body of POST, PUT and DELETE requests.
type MutationRequest struct {
	Action   string `json:"action" example:"create" enums:"create,update,set_status,delete"`
	ID       FlexID `json:"id,omitempty" swaggertype:"integer" example:"1"`
	Title    string `json:"title,omitempty" example:"State Budget Announced"`
	Author   string `json:"author,omitempty" example:"Ravi Kumar"`
	Category string `json:"category,omitempty" example:"Politics"`
	Content  string `json:"content,omitempty" example:"The state government announced..."`
	Region   string `json:"region,omitempty" example:"Telangana"`
	Language string `json:"language,omitempty" example:"English"`
	Date     string `json:"date,omitempty" example:"2024-01-15"`
	Status   string `json:"status,omitempty" example:"archived"`
}

// FlexID accepts an article ID sent as a JSON number or a numeric string.
// Anything unparseable decodes to 0, which the service rejects as missing.
type FlexID int64

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || string(b) == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		*id = 0
		return nil
	}
	*id = FlexID(n)
	return nil
}

func (req MutationRequest) createInput() artUC.CreateInput {
	return artUC.CreateInput{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		Content:  req.Content,
		Region:   req.Region,
		Language: req.Language,
		Date:     req.Date,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.DateLayout)
}

func toPublicDTO(p artUC.PublishedArticle) PublicDTO {
	a := p.Article
	return PublicDTO{
		ID:        a.ID,
		Title:     a.Title,
		Author:    a.Author,
		Category:  a.Category,
		Content:   a.Content,
		Region:    a.Region,
		Language:  a.Language,
		Date:      formatDate(a.Date),
		CreatedAt: a.CreatedAt,
		Featured:  p.Featured,
	}
}

func toAdminDTOs(articles []*entity.Article) []AdminDTO {
	out := make([]AdminDTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, AdminDTO{
			ID:        a.ID,
			Title:     a.Title,
			Author:    a.Author,
			Category:  a.Category,
			Content:   a.Content,
			Region:    a.Region,
			Language:  a.Language,
			Date:      formatDate(a.Date),
			Status:    string(a.Status),
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		})
	}
	return out
}

func toStatsDTO(s repository.ArticleStats) StatsDTO {
	return StatsDTO{
		Total:     s.Total,
		Published: s.Published,
		Draft:     s.Draft,
		Pending:   s.Pending,
		Archived:  s.Archived,
	}
}

// decodeMutation reads the request body. ok is false for malformed JSON.
func decodeMutation(body io.Reader) (MutationRequest, bool) {
	var req MutationRequest
	if body == nil {
		return req, false
	}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return MutationRequest{}, false
	}
	return req, true
}
