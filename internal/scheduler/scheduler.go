// Package scheduler runs periodic maintenance jobs
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// DefaultSweepInterval is how often idle sessions are looked for
const DefaultSweepInterval = time.Hour

// SessionSweeper drops learning sessions nobody used for a while
type SessionSweeper interface {
	SweepIdleSessions(maxIdle time.Duration) int
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   SessionSweeper
	maxIdle   time.Duration
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a scheduler sweeping sessions idle longer than maxIdle every interval
func New(sweeper SessionSweeper, maxIdle, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sweeper:   sweeper,
		maxIdle:   maxIdle,
		interval:  interval,
		logger:    logger,
	}
}

// Start registers the jobs and runs them in the background
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).Do(s.sweepIdleSessions); err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("Scheduler started",
		zap.Duration("sweep_interval", s.interval),
		zap.Duration("max_idle", s.maxIdle),
	)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) sweepIdleSessions() {
	removed := s.sweeper.SweepIdleSessions(s.maxIdle)
	s.logger.Debug("Idle session sweep finished", zap.Int("removed", removed))
}
