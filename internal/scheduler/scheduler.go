// Package scheduler refreshes the active city on a fixed interval.
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Refresher is the part of the dashboard the scheduler drives.
type Refresher interface {
	Refresh()
}

// Scheduler periodically reloads the active city.
type Scheduler struct {
	scheduler *gocron.Scheduler
	target    Refresher
	interval  time.Duration
	logger    *zap.SugaredLogger
}

// New creates a Scheduler. A non-positive interval disables it.
func New(target Refresher, interval time.Duration, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		target:    target,
		interval:  interval,
		logger:    logger,
	}
}

func (s *Scheduler) Enabled() bool {
	return s.interval > 0
}

// Start schedules the refresh job. The first run happens one interval from now.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.logger.Infow("Auto refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().SingletonMode().Do(func() {
		s.logger.Debugw("Auto refresh")
		s.target.Refresh()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Infow("Auto refresh enabled", "interval", s.interval)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
