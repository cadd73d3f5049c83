package filter

import (
	"strings"

	"internship-monitor/internal/config"
	"internship-monitor/internal/models"
	"internship-monitor/internal/normalize"
)

// Rejection reasons.
const (
	ReasonStipend  = "stipend"
	ReasonLocation = "location"
	ReasonKeyword  = "no_keyword_match"
)

// Result is a match decision. KeywordMatch is computed even when keywords are
// advisory and so do not affect Accepted.
type Result struct {
	Accepted     bool
	KeywordMatch bool
	Reason       string
}

type Matcher struct {
	minStipend int
	locations  []string
	keywords   []string
	strict     bool
}

func NewMatcher(prefs *config.Preferences) *Matcher {
	return &Matcher{
		minStipend: prefs.MinStipend,
		locations:  foldAll(prefs.Locations),
		keywords:   foldAll(prefs.Keywords),
		strict:     prefs.StrictKeywords(),
	}
}

// foldAll keeps empty entries. An empty location or keyword matches everything.
func foldAll(values []string) []string {
	folded := make([]string, 0, len(values))
	for _, v := range values {
		folded = append(folded, normalize.Fold(v))
	}
	return folded
}

// Match evaluates a normalized listing against the preferences.
func (m *Matcher) Match(listing models.Listing) Result {
	res := Result{KeywordMatch: m.matchesKeywords(listing.Title)}

	if listing.StipendAmount < m.minStipend {
		res.Reason = ReasonStipend
		return res
	}

	if !m.matchesLocation(listing.Location) {
		res.Reason = ReasonLocation
		return res
	}

	if m.strict && !res.KeywordMatch {
		res.Reason = ReasonKeyword
		return res
	}

	res.Accepted = true
	return res
}

// matchesLocation accepts when any configured location and the listing's
// location contain one another. No configured locations means no filter.
func (m *Matcher) matchesLocation(location string) bool {
	if len(m.locations) == 0 {
		return true
	}
	location = normalize.Fold(location)
	for _, loc := range m.locations {
		if strings.Contains(location, loc) || strings.Contains(loc, location) {
			return true
		}
	}
	return false
}

// matchesKeywords reports whether the title mentions any keyword. With no
// keywords configured every title matches.
func (m *Matcher) matchesKeywords(title string) bool {
	if len(m.keywords) == 0 {
		return true
	}
	title = normalize.Fold(title)
	for _, kw := range m.keywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}
