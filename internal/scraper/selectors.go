package scraper

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSelectors returns the rules for the Internshala listing layout.
func DefaultSelectors() *Selectors {
	s := &Selectors{
		Containers: []Rule{
			{Tag: "div", Attr: "class", Pattern: `(^|\s)individual_internship(\s|$)`},
			{Tag: "div", Attr: "class", Pattern: `(^|\s)internship_meta(\s|$)`},
			{Tag: "div", Attr: "id", Pattern: `internship_`},
		},
		IDAttributes:     []string{"internshipid", "data-internship-id", "id"},
		IDPrefix:         "internship_",
		DetailLinkMarker: "detail",
		Title: []Rule{
			{Tag: "h3", Attr: "class", Pattern: `heading`},
			{Tag: "h3"},
			{Tag: "h4", Attr: "class", Pattern: `profile|title`},
			{Tag: "a", Attr: "class", Pattern: `view_detail`},
		},
		Company: []Rule{
			{Tag: "p", Attr: "class", Pattern: `company`},
			{Tag: "div", Attr: "class", Pattern: `company`},
			{Tag: "span", Attr: "class", Pattern: `company`},
			{Tag: "a", Attr: "class", Pattern: `link_display_like_text`},
		},
		Location: []Rule{
			{Tag: "div", Attr: "class", Pattern: `location`},
			{Tag: "span", Attr: "class", Pattern: `location`},
			{Tag: "a", Attr: "class", Pattern: `location`},
		},
		Stipend: []Rule{
			{Tag: "span", Attr: "class", Pattern: `stipend`},
			{Tag: "div", Attr: "class", Pattern: `stipend`},
		},
		Duration: []Rule{
			{Tag: "div", Attr: "class", Pattern: `duration`},
			{Tag: "span", Attr: "class", Pattern: `duration`},
		},
		PostingTime: []Rule{
			{Tag: "span", Attr: "class", Pattern: `status-[a-z]+`},
			{Tag: "div", Attr: "class", Pattern: `status`},
			{Tag: "span"},
			{Tag: "div"},
		},
		PostingTimeScanLimit:  20,
		TimeKeywords:          []string{"ago", "just now", "hour", "day", "week", "month"},
		EarlyApplicantPhrases: []string{"early applicant", "be an early"},
	}
	if err := s.compile(); err != nil {
		panic(err)
	}
	return s
}

// LoadSelectors reads a selector set from YAML. Empty groups keep the defaults.
func LoadSelectors(filePath string) (*Selectors, error) {
	if filePath == "" {
		return DefaultSelectors(), nil
	}

	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("selectors file not found: %s: %w", filePath, err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read selectors file: %w", err)
	}

	var loaded Selectors
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse selectors YAML: %w", err)
	}

	selectors := mergeSelectors(DefaultSelectors(), &loaded)
	if err := selectors.compile(); err != nil {
		return nil, fmt.Errorf("invalid selector pattern: %w", err)
	}
	if err := validateSelectors(selectors); err != nil {
		return nil, err
	}

	return selectors, nil
}

func mergeSelectors(base, override *Selectors) *Selectors {
	rules := func(dst *[]Rule, src []Rule) {
		if len(src) > 0 {
			*dst = src
		}
	}
	strs := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}

	rules(&base.Containers, override.Containers)
	rules(&base.Title, override.Title)
	rules(&base.Company, override.Company)
	rules(&base.Location, override.Location)
	rules(&base.Stipend, override.Stipend)
	rules(&base.Duration, override.Duration)
	rules(&base.PostingTime, override.PostingTime)
	strs(&base.IDAttributes, override.IDAttributes)
	strs(&base.TimeKeywords, override.TimeKeywords)
	strs(&base.EarlyApplicantPhrases, override.EarlyApplicantPhrases)
	if override.IDPrefix != "" {
		base.IDPrefix = override.IDPrefix
	}
	if override.DetailLinkMarker != "" {
		base.DetailLinkMarker = override.DetailLinkMarker
	}
	if override.PostingTimeScanLimit != 0 {
		base.PostingTimeScanLimit = override.PostingTimeScanLimit
	}
	return base
}

// validateSelectors checks the minimal rule set.
func validateSelectors(s *Selectors) error {
	if len(s.Containers) == 0 {
		return fmt.Errorf("containers is required")
	}
	if len(s.Title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(s.IDAttributes) == 0 && s.DetailLinkMarker == "" {
		return fmt.Errorf("id_attributes or detail_link_marker is required")
	}
	if s.PostingTimeScanLimit <= 0 {
		return fmt.Errorf("posting_time_scan_limit must be > 0")
	}
	return nil
}
