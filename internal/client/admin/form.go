package admin

import (
	"strings"
	"time"

	"news-agency/internal/client/api"
	"news-agency/internal/utils/text"
)

// Form field keys used in FormErrors.
const (
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldRegion   = "region"
	FieldLanguage = "language"
	FieldDate     = "date"
)

const (
	maxTitleLen   = 255
	maxContentLen = 5000
)

// Form is the create/edit article form.
type Form struct {
	Title    string
	Author   string
	Category string
	Content  string
	Region   string
	Language string
	Date     string
}

// FormErrors maps a field key to its message. Empty means the form is valid.
type FormErrors map[string]string

// Input converts the form to an API payload.
func (f Form) Input() api.ArticleInput {
	return api.ArticleInput{
		Title:    strings.TrimSpace(f.Title),
		Author:   strings.TrimSpace(f.Author),
		Category: strings.TrimSpace(f.Category),
		Content:  strings.TrimSpace(f.Content),
		Region:   f.Region,
		Language: f.Language,
		Date:     f.Date,
	}
}

// FormFrom fills a form from an existing article.
func FormFrom(a api.Article) Form {
	return Form{
		Title:    a.Title,
		Author:   a.Author,
		Category: a.Category,
		Content:  a.Content,
		Region:   a.Region,
		Language: a.Language,
		Date:     a.Date,
	}
}

// Validate checks f before anything is sent. Dates after the end of today
// in now's location are rejected.
func Validate(f Form, now time.Time) FormErrors {
	errs := FormErrors{}

	switch {
	case strings.TrimSpace(f.Title) == "":
		errs[FieldTitle] = "Title is required"
	case text.CountRunes(f.Title) > maxTitleLen:
		errs[FieldTitle] = "Title cannot exceed 255 characters"
	}

	switch {
	case strings.TrimSpace(f.Content) == "":
		errs[FieldContent] = "Content is required"
	case text.CountRunes(f.Content) > maxContentLen:
		errs[FieldContent] = "Content cannot exceed 5000 characters"
	}

	if f.Region == "" {
		errs[FieldRegion] = "Region is required"
	}
	if f.Language == "" {
		errs[FieldLanguage] = "Language is required"
	}

	if f.Date == "" {
		errs[FieldDate] = "Date is required"
	} else if d, err := time.ParseInLocation(api.DateLayout, f.Date, now.Location()); err != nil {
		errs[FieldDate] = "Date must be in YYYY-MM-DD format"
	} else if d.After(endOfDay(now)) {
		errs[FieldDate] = "Date cannot be in the future"
	}

	return errs
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
