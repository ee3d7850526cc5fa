// Package text holds rune-aware helpers for rendering article text in the
// clients.
package text

import (
	"strings"
	"time"
)

// CountRunes returns the number of characters (runes) in text, not bytes.
// "こんにちは" is 5 runes but 15 bytes.
func CountRunes(text string) int {
	return len([]rune(text))
}

// Truncate shortens s to at most max runes, trims trailing whitespace of the
// cut and appends "...". Strings that already fit are returned unchanged.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max])) + "..."
}

// DisplayDateLayout renders dates like "Jan 15, 2024".
const DisplayDateLayout = "Jan 2, 2006"

// FormatDisplayDate formats t for article cards. The zero time renders as "".
func FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateLayout)
}
