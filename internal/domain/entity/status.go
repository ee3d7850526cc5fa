package entity

import "strings"

// Status is the publication state of an article.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusPending   Status = "pending"
	StatusArchived  Status = "archived"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusDraft, StatusPublished, StatusPending, StatusArchived}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus normalizes and validates a status string.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", &ValidationError{Field: "status", Message: "Status must be one of draft, published, pending, archived"}
	}
	return st, nil
}
