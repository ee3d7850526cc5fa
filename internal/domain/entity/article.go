package entity

import "time"

// DateLayout is the wire and storage format of Article.Date.
const DateLayout = "2006-01-02"

// Article is the only record the newsroom keeps.
// Date is the editorial calendar date and carries no time of day.
type Article struct {
	ID        int64
	Title     string
	Author    string
	Category  string
	Content   string
	Region    string
	Language  string
	Date      time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Message: "Date must use the YYYY-MM-DD format"}
	}
	return d, nil
}
