package config

import (
	"log/slog"
	"time"
)

// RateLimitConfig configures the per-client token bucket limiter.
type RateLimitConfig struct {
	Enabled bool
	// RPS is the sustained request rate per client IP.
	RPS float64
	// Burst is the bucket size.
	Burst int
	// IdleTTL drops limiters for clients not seen for this long.
	IdleTTL time.Duration
	// CleanupInterval is how often idle limiters are swept.
	CleanupInterval time.Duration
}

// DefaultRateLimitConfig returns 10 req/s with a burst of 20.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:         true,
		RPS:             10,
		Burst:           20,
		IdleTTL:         10 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

// LoadRateLimitConfig reads RATE_LIMIT_ENABLED, RATE_LIMIT_RPS and
// RATE_LIMIT_BURST. Out-of-range values fall back to the defaults.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := DefaultRateLimitConfig()
	cfg.Enabled = GetEnvBool("RATE_LIMIT_ENABLED", cfg.Enabled)

	if rps := GetEnvFloat("RATE_LIMIT_RPS", cfg.RPS); rps > 0 {
		cfg.RPS = rps
	} else {
		slog.Warn("invalid RATE_LIMIT_RPS, using default",
			slog.Float64("value", rps),
			slog.Float64("default", cfg.RPS))
	}

	burst := GetEnvInt("RATE_LIMIT_BURST", cfg.Burst)
	if err := ValidateIntRange(burst, 1, 10000); err != nil {
		slog.Warn("invalid RATE_LIMIT_BURST, using default",
			slog.Int("value", burst),
			slog.Int("default", cfg.Burst),
			slog.String("error", err.Error()))
	} else {
		cfg.Burst = burst
	}
	return cfg
}
