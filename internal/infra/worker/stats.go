package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"news-agency/internal/domain/entity"
	"news-agency/internal/handler/http/respond"
	"news-agency/internal/observability/metrics"
	"news-agency/internal/repository"
)

// StatsJobName labels the job in worker metrics.
const StatsJobName = "article_stats"

// StatsSource is the part of the article repository the job reads.
type StatsSource interface {
	Stats(ctx context.Context) (repository.ArticleStats, error)
}

// StatsJob copies article counts into the articles_total gauges.
type StatsJob struct {
	Source  StatsSource
	Timeout time.Duration
	Logger  *slog.Logger
}

// Run refreshes the gauges once. Gauges keep their previous values when the
// count fails.
func (j *StatsJob) Run(ctx context.Context) error {
	start := time.Now()
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	stats, err := j.Source.Stats(ctx)
	if err != nil {
		err = fmt.Errorf("refresh article stats: %w", err)
		metrics.RecordJob(StatsJobName, time.Since(start), err)
		j.Logger.Error("stats refresh failed", slog.String("error", respond.SanitizeError(err)))
		return err
	}

	metrics.SetArticlesByStatus("all", stats.Total)
	metrics.SetArticlesByStatus(string(entity.StatusPublished), stats.Published)
	metrics.SetArticlesByStatus(string(entity.StatusDraft), stats.Draft)
	metrics.SetArticlesByStatus(string(entity.StatusPending), stats.Pending)
	metrics.SetArticlesByStatus(string(entity.StatusArchived), stats.Archived)
	metrics.RecordJob(StatsJobName, time.Since(start), nil)

	j.Logger.Info("stats refreshed",
		slog.Int64("total", stats.Total),
		slog.Int64("published", stats.Published),
		slog.Int64("draft", stats.Draft),
		slog.Int64("pending", stats.Pending),
		slog.Int64("archived", stats.Archived),
		slog.Duration("duration", time.Since(start)))
	return nil
}
