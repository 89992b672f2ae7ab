// Package scheduler runs the periodic cache refresh so interactive
// requests mostly hit a warm cache.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"StockScope/internal/collector"
)

// Scheduler re-fetches stale symbols on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Symbols   []string
	Ctx       context.Context
}

// New creates a Scheduler over the registry symbols.
func New(ctx context.Context, col *collector.Collector, symbols []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Symbols:   symbols,
		Ctx:       ctx,
	}
}

// Register adds the refresh task under the given 6-field cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.RefreshAll); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logrus.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	logrus.Info("scheduler stopped")
}

// RefreshAll walks the registry and re-fetches every symbol whose cache
// entry is stale. GetSeries itself skips symbols that are still valid.
func (s *Scheduler) RefreshAll() {
	for _, symbol := range s.Symbols {
		if s.Ctx.Err() != nil {
			return
		}
		if _, status, err := s.Collector.GetSeries(s.Ctx, symbol); err != nil {
			logrus.WithFields(logrus.Fields{"symbol": symbol, "error": err}).
				Warn("scheduled refresh failed")
		} else if status == collector.CacheMiss {
			logrus.WithField("symbol", symbol).Info("scheduled refresh updated cache")
		}
	}
}
