// Package article provides the use cases behind the articles API:
// the public listing with featured flags, the admin listing and filter
// options, and the create, update, status and delete mutations.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that no stored article matched the ID.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates a missing or non-positive article ID.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrRequiredFields indicates that a mandatory field was empty after trimming.
	ErrRequiredFields = errors.New("all fields are required")
)
