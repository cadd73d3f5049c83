package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"internship-monitor/internal/models"
	"internship-monitor/internal/normalize"
)

var (
	ErrMissingID    = errors.New("listing has no identifier")
	ErrMissingTitle = errors.New("listing has no title")
)

// Strategy looks up one value in a listing fragment.
type Strategy func(fragment *goquery.Selection) (string, bool)

// FirstOf evaluates strategies in order and returns the first success.
func FirstOf(fragment *goquery.Selection, strategies []Strategy) (string, bool) {
	for _, strategy := range strategies {
		if v, ok := strategy(fragment); ok {
			return v, true
		}
	}
	return "", false
}

// TextRule yields the text of the first element matching the rule, if non-empty.
func TextRule(rule Rule) Strategy {
	return func(fragment *goquery.Selection) (string, bool) {
		text := normalize.Text(rule.find(fragment).First().Text())
		return text, text != ""
	}
}

// TextRules maps rules to strategies, preserving order.
func TextRules(rules []Rule) []Strategy {
	strategies := make([]Strategy, 0, len(rules))
	for _, rule := range rules {
		strategies = append(strategies, TextRule(rule))
	}
	return strategies
}

// AttrValue yields the fragment's own attribute with prefix removed.
func AttrValue(name, prefix string) Strategy {
	return func(fragment *goquery.Selection) (string, bool) {
		v := strings.TrimSpace(fragment.AttrOr(name, ""))
		if prefix != "" {
			v = strings.ReplaceAll(v, prefix, "")
		}
		return v, v != ""
	}
}

// DetailLinkID yields the last path segment of the fragment's first link when
// that link points at a detail page.
func DetailLinkID(marker string) Strategy {
	return func(fragment *goquery.Selection) (string, bool) {
		href, ok := firstHref(fragment)
		if !ok || !strings.Contains(href, marker) {
			return "", false
		}
		id := normalize.LastPathSegment(href)
		return id, id != ""
	}
}

// TimeText scans up to limit elements matching rule for recency text,
// skipping "early applicant" notices.
func TimeText(rule Rule, limit int, keywords, excluded []string) Strategy {
	return func(fragment *goquery.Selection) (string, bool) {
		var found string
		rule.find(fragment).EachWithBreak(func(i int, el *goquery.Selection) bool {
			if i >= limit {
				return false
			}
			text := normalize.Text(el.Text())
			if isPostingTime(strings.ToLower(text), keywords, excluded) {
				found = text
				return false
			}
			return true
		})
		return found, found != ""
	}
}

func isPostingTime(lower string, keywords, excluded []string) bool {
	if !containsAny(lower, keywords) {
		return false
	}
	return !containsAny(lower, excluded)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func firstHref(fragment *goquery.Selection) (string, bool) {
	href, ok := fragment.Find("a[href]").First().Attr("href")
	return href, ok
}

// Extractor resolves listing fields from a page fragment.
type Extractor struct {
	baseURL string

	id          []Strategy
	title       []Strategy
	company     []Strategy
	location    []Strategy
	stipend     []Strategy
	duration    []Strategy
	postingTime []Strategy
}

func NewExtractor(selectors *Selectors, baseURL string) *Extractor {
	id := make([]Strategy, 0, len(selectors.IDAttributes)+1)
	for _, attr := range selectors.IDAttributes {
		id = append(id, AttrValue(attr, selectors.IDPrefix))
	}
	if selectors.DetailLinkMarker != "" {
		id = append(id, DetailLinkID(selectors.DetailLinkMarker))
	}

	postingTime := make([]Strategy, 0, len(selectors.PostingTime))
	for _, rule := range selectors.PostingTime {
		postingTime = append(postingTime, TimeText(rule, selectors.PostingTimeScanLimit, selectors.TimeKeywords, selectors.EarlyApplicantPhrases))
	}

	return &Extractor{
		baseURL:     baseURL,
		id:          id,
		title:       TextRules(selectors.Title),
		company:     TextRules(selectors.Company),
		location:    TextRules(selectors.Location),
		stipend:     TextRules(selectors.Stipend),
		duration:    TextRules(selectors.Duration),
		postingTime: postingTime,
	}
}

// Extract returns the raw fields of one listing. Only a missing identifier
// or title is an error; other fields fall back to their defaults.
func (e *Extractor) Extract(fragment *goquery.Selection) (listing models.Listing, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract listing: %v", r)
		}
	}()

	id, ok := FirstOf(fragment, e.id)
	if !ok {
		return models.Listing{}, ErrMissingID
	}
	title, ok := FirstOf(fragment, e.title)
	if !ok {
		return models.Listing{}, fmt.Errorf("%w (id %s)", ErrMissingTitle, id)
	}

	listing = models.Listing{
		ID:              id,
		Title:           title,
		Company:         valueOr(fragment, e.company, DefaultCompany),
		Location:        valueOr(fragment, e.location, DefaultLocation),
		StipendText:     valueOr(fragment, e.stipend, DefaultStipend),
		Duration:        valueOr(fragment, e.duration, DefaultDuration),
		PostingTimeText: valueOr(fragment, e.postingTime, DefaultPostingTime),
	}
	if href, ok := firstHref(fragment); ok {
		listing.Link = normalize.AbsoluteURL(e.baseURL, href)
	}
	return listing, nil
}

func valueOr(fragment *goquery.Selection, strategies []Strategy, def string) string {
	if v, ok := FirstOf(fragment, strategies); ok {
		return v
	}
	return def
}
