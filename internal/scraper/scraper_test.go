package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-monitor/internal/config"
	"internship-monitor/internal/fetcher"
	"internship-monitor/internal/observability"
	"internship-monitor/internal/storage"
)

type fakeFetcher struct {
	pages map[string][]byte
	err   error
	urls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, urlStr string) (*fetcher.FetchResponse, error) {
	f.urls = append(f.urls, urlStr)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.pages[urlStr]
	if !ok {
		return nil, errors.New("no such page")
	}
	return &fetcher.FetchResponse{StatusCode: 200, Body: body, URL: urlStr}, nil
}

func newTestScraper(prefs *config.Preferences, f fetcher.Fetcher) *Scraper {
	settings := config.DefaultSettings()
	s := NewScraper(settings, prefs, DefaultSelectors(), f, observability.NewNopLogger())
	s.now = func() time.Time { return time.Date(2025, 11, 15, 18, 0, 0, 0, time.UTC) }
	return s
}

func mumbaiPrefs() *config.Preferences {
	return &config.Preferences{
		Locations:   []string{"Mumbai"},
		MinStipend:  5000,
		MaxDaysOld:  7,
		KeywordMode: config.KeywordModeAdvisory,
	}
}

const webDevURL = "https://internshala.com/internships/web-development-internship/"

func TestScrapeCategory_FiltersAndMarksSeen(t *testing.T) {
	f := &fakeFetcher{pages: map[string][]byte{
		webDevURL: listingPage(matchingCard, lowStipendCard, staleCard, noTitleCard),
	}}
	s := newTestScraper(mumbaiPrefs(), f)
	seen := storage.NewSeenSet()

	listings, stats, err := s.ScrapeCategory(context.Background(), "web-development", seen)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	got := listings[0]
	assert.Equal(t, "1001", got.ID)
	assert.Equal(t, 8000, got.StipendAmount)
	assert.Equal(t, 2, got.DaysOld)
	assert.Equal(t, "web-development", got.Category)
	assert.Equal(t, time.Date(2025, 11, 15, 18, 0, 0, 0, time.UTC), got.FoundAt)

	assert.Equal(t, []string{"1001", "1002", "1003"}, seen.IDs(), "missing-title listing is not marked seen")
	assert.Equal(t, CategoryStats{Containers: 4, Skipped: 1, TooOld: 1, Rejected: 1, Matched: 1}, stats)
	assert.Equal(t, []string{webDevURL}, f.urls)
}

func TestScrapeCategory_AlreadySeenNeverReturned(t *testing.T) {
	f := &fakeFetcher{pages: map[string][]byte{webDevURL: listingPage(matchingCard)}}
	s := newTestScraper(mumbaiPrefs(), f)
	seen := storage.NewSeenSet("1001")

	listings, stats, err := s.ScrapeCategory(context.Background(), "web-development", seen)
	require.NoError(t, err)
	assert.Empty(t, listings)
	assert.Equal(t, 1, stats.AlreadySeen)
	assert.Equal(t, []string{"1001"}, seen.IDs())
}

func TestScrapeCategory_DuplicateIDsOnPage(t *testing.T) {
	f := &fakeFetcher{pages: map[string][]byte{webDevURL: listingPage(matchingCard, matchingCard)}}
	s := newTestScraper(mumbaiPrefs(), f)
	seen := storage.NewSeenSet()

	listings, _, err := s.ScrapeCategory(context.Background(), "web-development", seen)
	require.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.Equal(t, 1, seen.Len())
}

func TestScrapeCategory_StaleListingNotRetried(t *testing.T) {
	prefs := mumbaiPrefs()
	prefs.MinStipend = 0
	seen := storage.NewSeenSet()

	first := &fakeFetcher{pages: map[string][]byte{webDevURL: listingPage(staleCard)}}
	listings, _, err := newTestScraper(prefs, first).ScrapeCategory(context.Background(), "web-development", seen)
	require.NoError(t, err)
	assert.Empty(t, listings)
	assert.True(t, seen.Contains("1003"))

	fresher := `<div class="individual_internship" internshipid="1003"><h3>Old Posting</h3><div class="locations">Mumbai</div><span class="status-success">Just now</span></div>`
	second := &fakeFetcher{pages: map[string][]byte{webDevURL: listingPage(fresher)}}
	listings, _, err = newTestScraper(prefs, second).ScrapeCategory(context.Background(), "web-development", seen)
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestScrapeCategory_NetworkError(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection reset")}
	s := newTestScraper(mumbaiPrefs(), f)
	seen := storage.NewSeenSet()

	listings, _, err := s.ScrapeCategory(context.Background(), "web-development", seen)
	assert.Error(t, err)
	assert.Empty(t, listings)
	assert.Equal(t, 0, seen.Len())
}

func TestScrapeCategory_NoContainers(t *testing.T) {
	f := &fakeFetcher{pages: map[string][]byte{webDevURL: []byte(`<html><body><p>Maintenance</p></body></html>`)}}
	s := newTestScraper(mumbaiPrefs(), f)

	listings, stats, err := s.ScrapeCategory(context.Background(), "web-development", storage.NewSeenSet())
	require.NoError(t, err)
	assert.Empty(t, listings)
	assert.Equal(t, 0, stats.Containers)
}

func TestScrapeCategory_FirstContainerStrategyWins(t *testing.T) {
	page := `<html><body>
<div class="individual_internship" internshipid="1"><h3>First</h3><span class="status-success">Just now</span></div>
<div class="internship_meta" internshipid="2"><h3>Second</h3><span class="status-success">Just now</span></div>
</body></html>`
	f := &fakeFetcher{pages: map[string][]byte{webDevURL: []byte(page)}}
	s := newTestScraper(&config.Preferences{MaxDaysOld: config.UnknownAge, KeywordMode: config.KeywordModeAdvisory}, f)

	listings, _, err := s.ScrapeCategory(context.Background(), "web-development", storage.NewSeenSet())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "1", listings[0].ID)
}

func TestScrapeCategory_LinkFallsBackToCategoryPage(t *testing.T) {
	card := `
<div class="individual_internship" internshipid="1005">
  <h3>Marketing Intern</h3>
  <div class="locations">Mumbai</div>
  <span class="stipend">₹ 7,500 /month</span>
  <span class="status-success">Few hours ago</span>
</div>`
	f := &fakeFetcher{pages: map[string][]byte{webDevURL: listingPage(card)}}
	s := newTestScraper(mumbaiPrefs(), f)

	listings, _, err := s.ScrapeCategory(context.Background(), "web-development", storage.NewSeenSet())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, webDevURL, listings[0].Link)
	assert.Equal(t, 0, listings[0].DaysOld)
}
