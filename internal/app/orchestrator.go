package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"internship-monitor/internal/config"
	"internship-monitor/internal/fetcher"
	"internship-monitor/internal/models"
	"internship-monitor/internal/observability"
	"internship-monitor/internal/scraper"
	"internship-monitor/internal/storage"
)

type Orchestrator struct {
	prefs   *config.Preferences
	scraper *scraper.Scraper
	store   storage.SeenStore
	delay   time.Duration
	logger  *observability.Logger
}

func NewOrchestrator(
	prefs *config.Preferences,
	s *scraper.Scraper,
	store storage.SeenStore,
	categoryDelay time.Duration,
	logger *observability.Logger,
) *Orchestrator {
	return &Orchestrator{
		prefs:   prefs,
		scraper: s,
		store:   store,
		delay:   categoryDelay,
		logger:  logger,
	}
}

// RunSummary describes one pass over all categories.
type RunSummary struct {
	RunID            string
	Categories       int
	FailedCategories int
	SeenBefore       int
	SeenAfter        int
	Totals           scraper.CategoryStats
	Duration         time.Duration
	Interrupted      bool
	SaveErr          error
	NewListings      []models.Listing
}

// Run scrapes every configured category in order and persists the grown
// seen-set. A category that fails is logged and skipped, and a failed save
// is recorded in the summary without failing the run. When ctx is
// cancelled the seen-set is left untouched and ctx.Err() is returned.
func (o *Orchestrator) Run(ctx context.Context) (*RunSummary, error) {
	started := time.Now()
	summary := &RunSummary{RunID: uuid.NewString()}
	logger := o.logger.With("run_id", summary.RunID)

	seen, err := o.store.Load(ctx)
	if err != nil {
		return summary, err
	}
	summary.SeenBefore = seen.Len()

	logger.Info("Starting internship scrape",
		"categories", len(o.prefs.SearchCategories),
		"seen", summary.SeenBefore,
	)

	pacer := fetcher.NewPacer(o.delay)
	for _, category := range o.prefs.SearchCategories {
		if err := pacer.Wait(ctx); err != nil {
			return o.interrupted(summary, logger, err)
		}

		listings, stats, err := o.scraper.ScrapeCategory(ctx, category, seen)
		summary.Categories++
		summary.NewListings = append(summary.NewListings, listings...)
		addStats(&summary.Totals, stats)

		if err != nil {
			if ctx.Err() != nil {
				return o.interrupted(summary, logger, ctx.Err())
			}
			summary.FailedCategories++
			logger.Error("Category scrape failed",
				"category", category,
				"error", err.Error(),
			)
			continue
		}

		logger.Info("Category processed",
			"category", category,
			"containers", stats.Containers,
			"already_seen", stats.AlreadySeen,
			"too_old", stats.TooOld,
			"rejected", stats.Rejected,
			"matched", stats.Matched,
		)
	}

	summary.SeenAfter = seen.Len()
	if seen.Len() > 0 {
		if err := o.store.Save(ctx, seen); err != nil {
			logger.Error("Failed to save seen internships", "error", err.Error())
			summary.SaveErr = err
		}
	}

	summary.Duration = time.Since(started)
	logger.Info("Scrape completed",
		"new_internships", len(summary.NewListings),
		"seen", summary.SeenAfter,
		"failed_categories", summary.FailedCategories,
		"duration", summary.Duration.String(),
	)
	return summary, nil
}

func (o *Orchestrator) interrupted(summary *RunSummary, logger *observability.Logger, err error) (*RunSummary, error) {
	summary.Interrupted = true
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("Scrape interrupted, seen internships not saved",
			"categories_done", summary.Categories,
		)
	}
	return summary, err
}

func addStats(total *scraper.CategoryStats, s scraper.CategoryStats) {
	total.Containers += s.Containers
	total.Skipped += s.Skipped
	total.AlreadySeen += s.AlreadySeen
	total.TooOld += s.TooOld
	total.Rejected += s.Rejected
	total.Matched += s.Matched
}
