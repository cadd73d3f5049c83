package scraper

import (
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// Field defaults used when no rule yields text.
const (
	DefaultCompany     = "Not specified"
	DefaultLocation    = "Location not specified"
	DefaultStipend     = "Not disclosed"
	DefaultDuration    = "Not specified"
	DefaultPostingTime = "Unknown"
)

// Rule is one structural lookup: an element tag plus an optional attribute
// whose value must match Pattern. An empty Pattern only requires the attribute.
type Rule struct {
	Tag     string `yaml:"tag"`
	Attr    string `yaml:"attr"`
	Pattern string `yaml:"pattern"`

	re *regexp.Regexp
}

func (r *Rule) compile() error {
	if r.Pattern == "" {
		r.re = nil
		return nil
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return fmt.Errorf("rule %s[%s~%q]: %w", r.Tag, r.Attr, r.Pattern, err)
	}
	r.re = re
	return nil
}

// find returns the descendants of sel matching the rule, in document order.
func (r *Rule) find(sel *goquery.Selection) *goquery.Selection {
	tag := r.Tag
	if tag == "" {
		tag = "*"
	}
	found := sel.Find(tag)
	if r.Attr == "" {
		return found
	}
	return found.FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(r.Attr)
		if !ok {
			return false
		}
		return r.re == nil || r.re.MatchString(v)
	})
}

// Selectors lists the extraction rules for a listing page, in priority order.
type Selectors struct {
	Containers []Rule `yaml:"containers"`

	IDAttributes     []string `yaml:"id_attributes"`
	IDPrefix         string   `yaml:"id_prefix"`
	DetailLinkMarker string   `yaml:"detail_link_marker"`

	Title    []Rule `yaml:"title"`
	Company  []Rule `yaml:"company"`
	Location []Rule `yaml:"location"`
	Stipend  []Rule `yaml:"stipend"`
	Duration []Rule `yaml:"duration"`

	PostingTime           []Rule   `yaml:"posting_time"`
	PostingTimeScanLimit  int      `yaml:"posting_time_scan_limit"`
	TimeKeywords          []string `yaml:"time_keywords"`
	EarlyApplicantPhrases []string `yaml:"early_applicant_phrases"`
}

func (s *Selectors) compile() error {
	groups := [][]Rule{s.Containers, s.Title, s.Company, s.Location, s.Stipend, s.Duration, s.PostingTime}
	for _, group := range groups {
		for i := range group {
			if err := group[i].compile(); err != nil {
				return err
			}
		}
	}
	return nil
}
