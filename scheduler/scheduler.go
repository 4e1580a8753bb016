// Package scheduler runs the periodic refresh of every favorite
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"forecast.app/internal/core/favorites"
	"forecast.app/internal/ports"
	"forecast.app/pkg/errors"
)

// Refresher refreshes all stored favorites
type Refresher interface {
	RefreshAll(ctx context.Context) ([]favorites.Entry, error)
}

// Scheduler triggers a full favorites refresh on a fixed interval. Runs
// never overlap; a tick that finds the previous run still going is skipped.
type Scheduler struct {
	cron      *gocron.Scheduler
	refresher Refresher
	logger    ports.Logger
	interval  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

type Dependencies struct {
	Refresher Refresher
	Logger    ports.Logger
	Interval  time.Duration
}

func NewScheduler(deps Dependencies) (*Scheduler, error) {
	if deps.Refresher == nil {
		return nil, errors.NewValidationError("refresher is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Interval <= 0 {
		return nil, errors.NewConfigurationError("refresh interval must be positive", nil)
	}

	cron := gocron.NewScheduler(time.UTC)
	cron.SingletonModeAll()

	return &Scheduler{
		cron:      cron,
		refresher: deps.Refresher,
		logger:    deps.Logger,
		interval:  deps.Interval,
	}, nil
}

// Start schedules the refresh job and returns immediately. The first run
// happens right away. Stop or canceling ctx ends the schedule.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	if _, err := s.cron.Every(s.interval).Do(s.refresh); err != nil {
		s.cancel()
		return errors.NewConfigurationError("failed to schedule favorites refresh", err)
	}

	s.cron.StartAsync()
	s.logger.Info("Favorites refresh scheduled", ports.F("interval", s.interval.String()))
	return nil
}

// Stop cancels any running refresh and waits for the scheduler to halt
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.cron.Stop()
}

func (s *Scheduler) refresh() {
	if s.ctx.Err() != nil {
		return
	}

	started := time.Now()
	entries, err := s.refresher.RefreshAll(s.ctx)
	if err != nil {
		s.logger.Error("Scheduled favorites refresh failed", ports.F("error", err))
		return
	}

	failed := 0
	for _, e := range entries {
		if e.Weather.IsFailure() {
			failed++
		}
	}

	s.logger.Info("Scheduled favorites refresh completed",
		ports.F("favorites", len(entries)),
		ports.F("failed", failed),
		ports.F("duration_ms", time.Since(started).Milliseconds()))
}
