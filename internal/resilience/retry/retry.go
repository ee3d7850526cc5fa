// Package retry waits out dependencies that are still starting, such as a
// database container that is not accepting connections yet. Request paths
// never retry; they rely on the circuit breaker instead.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"syscall"
	"time"
)

// Config holds the backoff schedule.
type Config struct {
	MaxAttempts    int
	InitialDelay   time.Duration
	MaxDelay       time.Duration
	Multiplier     float64
	JitterFraction float64 // 0.0 to 1.0

	// Retryable decides whether an error is worth another attempt.
	// nil means IsRetryable.
	Retryable func(error) bool

	// Logger receives one line per failed attempt. nil means slog.Default().
	Logger *slog.Logger
}

// StartupConfig suits a process waiting for PostgreSQL at boot: about half
// a minute of attempts.
func StartupConfig() Config {
	return Config{
		MaxAttempts:    8,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       8 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// Always retries every error. Use it for probes whose failure just means
// "not yet", such as waiting for a table another process creates.
func Always(error) bool { return true }

// WithBackoff runs fn until it succeeds, returns a non-retryable error, the
// attempts run out or ctx is done.
func WithBackoff(ctx context.Context, cfg Config, op string, fn func() error) error {
	retryable := cfg.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var lastErr error
	delay := cfg.InitialDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				logger.Info("operation succeeded after retry", slog.String("op", op), slog.Int("attempt", attempt))
			}
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		logger.Warn("operation failed, retrying",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		t := time.NewTimer(delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("%s: retry aborted: %w", op, ctx.Err())
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
		delay = addJitter(delay, cfg.JitterFraction)
	}

	return fmt.Errorf("%s: max retry attempts (%d) exceeded: %w", op, cfg.MaxAttempts, lastErr)
}

// IsRetryable reports whether err looks like a dependency that is not up
// yet: refused or reset connections and network timeouts.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH)
}

func addJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 {
		return d
	}
	fraction = min(fraction, 1.0)
	// #nosec G404 -- jitter does not need crypto randomness
	return d + time.Duration(rand.Float64()*float64(d)*fraction)
}
