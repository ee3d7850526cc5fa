// Package worker holds the background side of the service: the scheduled
// job that refreshes article gauges and the probe server of the worker
// process.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"news-agency/pkg/config"
)

// WorkerConfig holds the scheduling and probe settings of the worker.
type WorkerConfig struct {
	// StatsSchedule is a cron expression or descriptor ("@every 1m").
	StatsSchedule string

	// Timezone the schedule is evaluated in.
	Timezone string

	// JobTimeout bounds a single stats refresh.
	JobTimeout time.Duration

	// HealthPort serves /health, /health/ready and /metrics.
	HealthPort int
}

// DefaultConfig returns the settings used when the environment is silent.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		StatsSchedule: "@every 1m",
		Timezone:      "UTC",
		JobTimeout:    30 * time.Second,
		HealthPort:    9091,
	}
}

// Validate reports every invalid field at once.
func (c *WorkerConfig) Validate() error {
	var errs []error
	if err := config.ValidateCronSchedule(c.StatsSchedule); err != nil {
		errs = append(errs, fmt.Errorf("stats schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.JobTimeout); err != nil {
		errs = append(errs, fmt.Errorf("job timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	return errors.Join(errs...)
}

// LoadConfigFromEnv reads STATS_REFRESH_SCHEDULE, WORKER_TIMEZONE,
// STATS_JOB_TIMEOUT and WORKER_HEALTH_PORT. An invalid value is replaced by
// its default with a warning, so the result always validates.
func LoadConfigFromEnv(logger *slog.Logger) *WorkerConfig {
	def := DefaultConfig()
	cfg := def

	fallback := func(field string, err error) {
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", err.Error()))
	}

	cfg.StatsSchedule = config.GetEnvString("STATS_REFRESH_SCHEDULE", def.StatsSchedule)
	if err := config.ValidateCronSchedule(cfg.StatsSchedule); err != nil {
		fallback("StatsSchedule", err)
		cfg.StatsSchedule = def.StatsSchedule
	}

	cfg.Timezone = config.GetEnvString("WORKER_TIMEZONE", def.Timezone)
	if err := config.ValidateTimezone(cfg.Timezone); err != nil {
		fallback("Timezone", err)
		cfg.Timezone = def.Timezone
	}

	cfg.JobTimeout = config.GetEnvDuration("STATS_JOB_TIMEOUT", def.JobTimeout)
	if err := config.ValidatePositiveDuration(cfg.JobTimeout); err != nil {
		fallback("JobTimeout", err)
		cfg.JobTimeout = def.JobTimeout
	}

	cfg.HealthPort = config.GetEnvInt("WORKER_HEALTH_PORT", def.HealthPort)
	if err := config.ValidateIntRange(cfg.HealthPort, 1024, 65535); err != nil {
		fallback("HealthPort", err)
		cfg.HealthPort = def.HealthPort
	}

	return &cfg
}
