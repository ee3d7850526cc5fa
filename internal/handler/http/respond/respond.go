// Package respond writes the articles API envelope: every body is a JSON
// object with a boolean "success", plus "message" on failure.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// ヘッダー送信後なのでログのみ
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Success writes {"success": true} merged with fields.
func Success(w http.ResponseWriter, code int, fields map[string]any) {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	JSON(w, code, body)
}

// Envelope is the body of every failed request and of plain
// acknowledgements.
type Envelope struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message,omitempty" example:"Article ID is required"`
}

// Fail writes {"success": false, "message": msg}.
func Fail(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, Envelope{Success: false, Message: msg})
}

// AppError is an error type that carries a user-facing message.
type AppError struct {
	UserMsg string // Message to display to users
	Err     error  // Internal error (logged for debugging)
	Code    int    // HTTP status code
}

// Error returns the error message, implementing the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

// Unwrap returns the underlying error, implementing the errors.Unwrap interface.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// Error writes err as a failure envelope. An *AppError supplies its own code
// and message. Anything else becomes a 500 with a generic message.
// Server-side failures are logged with credentials masked.
func Error(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	code, msg := http.StatusInternalServerError, "Internal server error"
	var appErr *AppError
	if errors.As(err, &appErr) {
		code, msg = appErr.Code, appErr.UserMsg
	}

	if code >= http.StatusInternalServerError {
		slog.Default().Error("request failed",
			slog.String("status", http.StatusText(code)),
			slog.Int("code", code),
			slog.String("user_message", msg),
			slog.String("error", SanitizeError(err)))
	}
	Fail(w, code, msg)
}
