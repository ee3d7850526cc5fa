package entity

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by repositories when no row matched an id.
var ErrNotFound = errors.New("article not found")

// ValidationError names the field that failed a rule. Message is meant for
// the person who filled in the form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
