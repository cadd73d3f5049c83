package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"internship-monitor/internal/app"
	"internship-monitor/internal/config"
	"internship-monitor/internal/fetcher"
	"internship-monitor/internal/models"
	"internship-monitor/internal/notify"
	"internship-monitor/internal/observability"
	"internship-monitor/internal/scraper"
	"internship-monitor/internal/storage/jsonfile"
)

func main() {
	os.Exit(run())
}

func run() int {
	settingsPath := flag.String("settings", "configs/settings.yaml", "run settings file (YAML, optional)")
	prefsPath := flag.String("config", "", "preferences file (JSON), overrides preferences_path")
	envFile := flag.String("env", ".env", "file with mail credentials (optional)")
	dryRun := flag.Bool("dry-run", false, "scrape and update the seen list without sending mail")
	schedule := flag.String("schedule", "", "scheduler mode override: oneshot or cron")
	flag.Parse()

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		return 1
	}
	if *prefsPath != "" {
		settings.PreferencesPath = *prefsPath
	}
	if *schedule != "" {
		settings.Scheduler.Mode = *schedule
		if err := settings.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
			return 1
		}
	}

	logger := observability.NewLogger(settings.Observability)

	prefs, err := config.LoadPreferences(settings.PreferencesPath)
	if err != nil {
		logger.Error("Failed to load preferences", "path", settings.PreferencesPath, "error", err.Error())
		return 1
	}

	selectors, err := scraper.LoadSelectors(settings.SelectorsFile)
	if err != nil {
		logger.Error("Failed to load selectors", "path", settings.SelectorsFile, "error", err.Error())
		return 1
	}

	creds, err := config.LoadCredentials(*envFile)
	if err != nil {
		logger.Error("Failed to load credentials", "path", *envFile, "error", err.Error())
		return 1
	}

	f := fetcher.New(settings, logger)
	if closer, ok := f.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	store := jsonfile.NewStore(settings.Storage.DataDir, settings.Storage.SeenFile, settings.Storage.MaxEntries, logger)
	orchestrator := app.NewOrchestrator(
		prefs,
		scraper.NewScraper(settings, prefs, selectors, f, logger),
		store,
		settings.GetCategoryDelay(),
		logger,
	)
	notifier := notify.NewNotifier(creds, notify.NewSMTPTransport(settings.Mail, settings.GetMailTimeout(), logger), logger)

	ctx, cancel := app.GracefulShutdown(logger)
	defer cancel()

	logger.Info("Internship monitor starting",
		"preferences", settings.PreferencesPath,
		"categories", prefs.SearchCategories,
		"locations", prefs.Locations,
		"min_stipend", prefs.MinStipend,
		"max_days_old", prefs.MaxDaysOld,
		"keyword_mode", prefs.KeywordMode,
		"seen_file", store.Path(),
		"dry_run", *dryRun,
	)

	job := func(ctx context.Context) error {
		summary, err := orchestrator.Run(ctx)
		if err != nil {
			return err
		}
		printSummary(os.Stdout, summary.NewListings)

		if *dryRun || len(summary.NewListings) == 0 {
			return nil
		}
		if err := notifier.Notify(ctx, summary.NewListings); err != nil {
			logger.Error("Notification failed", "error", err.Error())
		}
		return nil
	}

	err = app.NewScheduler(settings.Scheduler, logger).Run(ctx, job)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		logger.Info("Interrupted, exiting")
		return 0
	default:
		logger.Error("Run failed", "error", err.Error())
		return 1
	}
}

func printSummary(w io.Writer, listings []models.Listing) {
	fmt.Fprintln(w)
	if len(listings) == 0 {
		fmt.Fprintln(w, "No new internships matching your criteria.")
		return
	}

	fmt.Fprintf(w, "Found %d new internship(s):\n", len(listings))
	for i, l := range listings {
		fmt.Fprintf(w, "%d. %s at %s\n", i+1, l.Title, l.Company)
		fmt.Fprintf(w, "   💰 %s | 📍 %s\n", l.StipendText, l.Location)
		fmt.Fprintf(w, "   %s\n", l.Link)
	}
}
