package entity

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator"
)

var validate = validator.New()

// articleRules mirrors the writable columns of the articles table.
// Field order decides which error is reported first.
// 入力上限はスキーマのカラム長と一致させる
type articleRules struct {
	Title    string `validate:"required,max=255"`
	Author   string `validate:"max=100"`
	Category string `validate:"max=50"`
	Content  string `validate:"required,max=5000"`
	Region   string `validate:"required,max=100"`
	Language string `validate:"required,max=50"`
	Status   string `validate:"omitempty,oneof=draft published pending archived"`
}

// Validate checks the writable fields of the article and returns the first
// failure as a *ValidationError. Lengths are counted in characters, not bytes.
func (a *Article) Validate() error {
	err := validate.Struct(articleRules{
		Title:    a.Title,
		Author:   a.Author,
		Category: a.Category,
		Content:  a.Content,
		Region:   a.Region,
		Language: a.Language,
		Status:   string(a.Status),
	})
	if err == nil {
		if a.Date.IsZero() {
			return &ValidationError{Field: "date", Message: "Date is required"}
		}
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate article: %w", err)
	}
	return toValidationError(verrs[0])
}

func toValidationError(fe validator.FieldError) *ValidationError {
	field := fe.Field()
	ve := &ValidationError{Field: lowerFirst(field)}
	switch fe.Tag() {
	case "required":
		ve.Message = field + " is required"
	case "max":
		ve.Message = fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "oneof":
		ve.Message = field + " must be one of " + fe.Param()
	default:
		ve.Message = field + " is invalid"
	}
	return ve
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
