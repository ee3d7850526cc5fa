// Package logging builds the application's slog loggers.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"news-agency/internal/handler/http/requestid"
)

// ParseLevel maps debug, info, warn and error to slog levels.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a JSON logger on stdout at the LOG_LEVEL level.
func NewLogger() *slog.Logger {
	return NewJSONLogger(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")))
}

// NewJSONLogger creates a JSON logger writing to w.
// Source locations are added when debugging.
func NewJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}))
}

// NewTextLogger creates a human-readable logger for the command line tools.
func NewTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithRequestID returns logger with the request ID of ctx attached, if any.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With(slog.String("request_id", reqID))
}
