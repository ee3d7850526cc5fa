package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"news-agency/internal/client/api"
	"news-agency/internal/client/notify"
)

// Exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the API refused or could not be reached
	ExitCommandError = 2 // bad flags, arguments or config
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError returns an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches code and message to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps err to a process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// apiFailure wraps an API error, preferring the server's message.
func apiFailure(what string, err error) error {
	return WrapExitError(ExitFailure, what, errors.New(api.Message(err, err.Error())))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid article id %q", arg))
	}
	return id, nil
}

// printNotifier prints store notifications as "level: message" lines.
func printNotifier(w io.Writer) notify.Notifier {
	return notify.Func(func(level notify.Level, msg string) {
		fmt.Fprintf(w, "%s: %s\n", level, msg)
	})
}
