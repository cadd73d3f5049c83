package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"internship-monitor/internal/config"
	"internship-monitor/internal/fetcher"
	"internship-monitor/internal/filter"
	"internship-monitor/internal/models"
	"internship-monitor/internal/observability"
	"internship-monitor/internal/storage"
)

// CategoryStats summarises one category page.
type CategoryStats struct {
	Containers  int
	Skipped     int
	AlreadySeen int
	TooOld      int
	Rejected    int
	Matched     int
}

type Scraper struct {
	settings  *config.Settings
	prefs     *config.Preferences
	selectors *Selectors
	extractor *Extractor
	matcher   *filter.Matcher
	fetcher   fetcher.Fetcher
	logger    *observability.Logger
	now       func() time.Time
}

func NewScraper(
	settings *config.Settings,
	prefs *config.Preferences,
	selectors *Selectors,
	f fetcher.Fetcher,
	logger *observability.Logger,
) *Scraper {
	return &Scraper{
		settings:  settings,
		prefs:     prefs,
		selectors: selectors,
		extractor: NewExtractor(selectors, settings.Site.BaseURL),
		matcher:   filter.NewMatcher(prefs),
		fetcher:   f,
		logger:    logger,
		now:       time.Now,
	}
}

// ScrapeCategory fetches one category page and returns the listings that are
// new, recent enough and match the preferences. Every listing it extracts is
// added to seen, matched or not. On error the listings gathered so far are
// returned along with it.
func (s *Scraper) ScrapeCategory(ctx context.Context, category string, seen *storage.SeenSet) ([]models.Listing, CategoryStats, error) {
	var stats CategoryStats
	pageURL := s.settings.CategoryURL(category)

	s.logger.Info("Fetching category", "category", category, "url", pageURL)
	resp, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, stats, fmt.Errorf("network error for %s: %w", category, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, stats, fmt.Errorf("failed to parse HTML for %s: %w", category, err)
	}

	containers := s.findContainers(doc.Selection)
	stats.Containers = containers.Length()
	if stats.Containers == 0 {
		s.logger.Warn("No internship containers found", "category", category)
		return nil, stats, nil
	}
	s.logger.Info("Found internships", "category", category, "count", stats.Containers)

	var listings []models.Listing
	containers.Each(func(i int, container *goquery.Selection) {
		if ctx.Err() != nil {
			return
		}
		listing, ok := s.processListing(container, category, seen, &stats)
		if ok {
			listings = append(listings, listing)
		}
	})

	if err := ctx.Err(); err != nil {
		return listings, stats, err
	}
	return listings, stats, nil
}

// findContainers returns the matches of the first container rule that finds anything.
func (s *Scraper) findContainers(doc *goquery.Selection) *goquery.Selection {
	for i := range s.selectors.Containers {
		found := s.selectors.Containers[i].find(doc)
		if found.Length() > 0 {
			return found
		}
	}
	return doc.Slice(0, 0)
}

func (s *Scraper) processListing(container *goquery.Selection, category string, seen *storage.SeenSet, stats *CategoryStats) (models.Listing, bool) {
	listing, err := s.extractor.Extract(container)
	if err != nil {
		stats.Skipped++
		if !errors.Is(err, ErrMissingID) && !errors.Is(err, ErrMissingTitle) {
			s.logger.Warn("Listing extraction failed", "category", category, "error", err.Error())
		}
		return models.Listing{}, false
	}

	if seen.Contains(listing.ID) {
		stats.AlreadySeen++
		return models.Listing{}, false
	}

	listing.Category = category
	if listing.Link == "" {
		listing.Link = s.settings.CategoryURL(category)
	}
	listing.FoundAt = s.now()
	listing.DaysOld = ParseRecency(listing.PostingTimeText)
	listing.StipendAmount = ParseStipend(listing.StipendText)

	if listing.DaysOld > s.prefs.MaxDaysOld {
		seen.Add(listing.ID)
		stats.TooOld++
		s.logger.Debug("Listing too old",
			"category", category,
			"id", listing.ID,
			"posted", listing.PostingTimeText,
			"days_old", listing.DaysOld,
		)
		return models.Listing{}, false
	}

	res := s.matcher.Match(listing)
	seen.Add(listing.ID)
	if !res.Accepted {
		stats.Rejected++
		s.logger.Debug("Listing does not match preferences",
			"category", category,
			"id", listing.ID,
			"reason", res.Reason,
		)
		return models.Listing{}, false
	}

	stats.Matched++
	s.logger.Info("New internship",
		"title", listing.Title,
		"company", listing.Company,
		"location", listing.Location,
		"keyword_match", res.KeywordMatch,
	)
	return listing, true
}
