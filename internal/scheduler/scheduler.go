package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/somersetradio/weather-bulletin/internal/store"
)

// Runner triggers one bulletin generation. Satisfied by pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context) (store.Bulletin, error)
}

// Scheduler periodically regenerates the bulletin so the audio file never
// goes stale between playouts.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    Runner
	logger    *zap.Logger
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. The timeout bounds a single pipeline run.
func New(logger *zap.Logger, runner Runner, interval, timeout time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		runner:    runner,
		logger:    logger,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the periodic job and starts the underlying scheduler. The
// first run fires immediately so a fresh bulletin exists at startup.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().StartImmediately().Do(func() {
		s.logger.Info("scheduler: running bulletin generation")

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if _, err := s.runner.Run(ctx); err != nil {
			s.logger.Warn("scheduler: bulletin generation failed", zap.Error(err))
			return
		}
		s.logger.Info("scheduler: bulletin generation completed")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
