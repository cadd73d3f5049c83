package app

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"internship-monitor/internal/config"
	"internship-monitor/internal/observability"
)

// Job is one complete scrape-and-notify pass.
type Job func(ctx context.Context) error

// Scheduler runs a Job once, or on every tick of a cron expression until
// the context is cancelled.
type Scheduler struct {
	mode     string
	cronExpr string
	logger   *observability.Logger
}

func NewScheduler(cfg config.SchedulerConfig, logger *observability.Logger) *Scheduler {
	return &Scheduler{
		mode:     cfg.Mode,
		cronExpr: cfg.CronExpr,
		logger:   logger,
	}
}

func (s *Scheduler) Run(ctx context.Context, job Job) error {
	if s.mode != "cron" {
		return job(ctx)
	}

	// Overlapping ticks are skipped so the seen-set has a single writer.
	c := cron.New(
		cron.WithLogger(cron.DefaultLogger),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	_, err := c.AddFunc(s.cronExpr, func() {
		if ctx.Err() != nil {
			return
		}
		if err := job(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("Scheduled run failed", "error", err.Error())
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", s.cronExpr, err)
	}

	s.logger.Info("Scheduler started", "cron", s.cronExpr)
	c.Start()
	<-ctx.Done()

	stopped := c.Stop()
	<-stopped.Done()
	s.logger.Info("Scheduler stopped")
	return nil
}
