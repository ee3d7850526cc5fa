package public

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// AutoRefreshSchedule is how often an open reader page reloads its articles.
const AutoRefreshSchedule = "@every 10m"

// StartAutoRefresh calls Refresh on AutoRefreshSchedule until ctx is done
// or the returned stop function is called. Overlapping runs are skipped.
// stop blocks until a running refresh has finished.
func (s *Store) StartAutoRefresh(ctx context.Context) (stop func(), err error) {
	return s.startAutoRefresh(ctx, AutoRefreshSchedule)
}

func (s *Store) startAutoRefresh(ctx context.Context, schedule string) (func(), error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, func() {
		if err := s.Refresh(ctx); err != nil {
			s.logger.Debug("auto refresh failed", slog.Any("error", err))
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule auto refresh: %w", err)
	}
	c.Start()

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-ctx.Done():
		case <-done:
		}
		<-c.Stop().Done()
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-finished
	}, nil
}
