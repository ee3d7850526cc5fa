// Command worker refreshes the article gauges on a cron schedule and serves
// them, with liveness and readiness probes, on WORKER_HEALTH_PORT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sony/gobreaker"

	"news-agency/internal/handler/http/respond"
	pgRepo "news-agency/internal/infra/adapter/persistence/postgres"
	"news-agency/internal/infra/db"
	workerPkg "news-agency/internal/infra/worker"
	"news-agency/internal/observability/logging"
	"news-agency/internal/observability/metrics"
	"news-agency/internal/resilience/circuitbreaker"
	"news-agency/internal/resilience/retry"
	"news-agency/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := workerPkg.LoadConfigFromEnv(logger)
	logger.Info("worker configuration loaded",
		slog.String("stats_schedule", cfg.StatsSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("job_timeout", cfg.JobTimeout),
		slog.Int("health_port", cfg.HealthPort))

	healthAddr := fmt.Sprintf(":%d", cfg.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	cbCfg := circuitbreaker.DBConfig()
	cbCfg.OnStateChange = func(_ string, _, to gobreaker.State) {
		metrics.DBCircuitBreakerState.Set(float64(to))
	}
	job := &workerPkg.StatsJob{
		Source:  pgRepo.NewArticleRepo(circuitbreaker.NewDBCircuitBreakerWithConfig(database, cbCfg)),
		Timeout: cfg.JobTimeout,
		Logger:  logger,
	}

	runCronWorker(ctx, logger, cfg, job, healthServer)
}

func initDatabase(logger *slog.Logger) *sql.DB {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	database, err := db.OpenWithRetry(ctx, config.LoadDatabaseConfig(), retry.StartupConfig())
	if err != nil {
		logger.Error("failed to open database", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}
	// マイグレーションは API プロセスが実行する
	if err := db.WaitForSchema(ctx, database, retry.StartupConfig()); err != nil {
		logger.Error("migrations did not complete in time", slog.Any("error", err))
		_ = database.Close()
		os.Exit(1)
	}
	return database
}

func runCronWorker(ctx context.Context, logger *slog.Logger, cfg *workerPkg.WorkerConfig, job *workerPkg.StatsJob, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err = c.AddFunc(cfg.StatsSchedule, func() {
		_ = job.Run(ctx)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}

	// 起動直後に一度埋めておく
	_ = job.Run(ctx)
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.StatsSchedule), slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)
	<-c.Stop().Done()
	logger.Info("worker stopped")
}
