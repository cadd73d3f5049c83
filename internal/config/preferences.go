package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	// UnknownAge is the days-old value for postings that are too old or undated.
	UnknownAge = 999

	KeywordModeAdvisory = "advisory"
	KeywordModeStrict   = "strict"
)

// DefaultCategories is used when the preferences file names no search categories.
var DefaultCategories = []string{"full-stack-development"}

// Preferences is what the user is looking for. Loaded once per run and not mutated afterwards.
type Preferences struct {
	Locations        []string `json:"locations"`
	MinStipend       int      `json:"min_stipend"`
	Keywords         []string `json:"keywords"`
	MaxDaysOld       int      `json:"max_days_old"`
	SearchCategories []string `json:"search_categories"`
	// KeywordMode decides whether a keyword miss rejects a listing.
	// "advisory" (default) only records the match.
	KeywordMode string `json:"keyword_mode,omitempty"`
}

// StrictKeywords reports whether keyword misses reject listings.
func (p *Preferences) StrictKeywords() bool {
	return p.KeywordMode == KeywordModeStrict
}

func (p *Preferences) Validate() error {
	if p.MinStipend < 0 {
		return fmt.Errorf("min_stipend must be >= 0")
	}
	if p.MaxDaysOld < 0 {
		return fmt.Errorf("max_days_old must be >= 0")
	}
	switch p.KeywordMode {
	case KeywordModeAdvisory, KeywordModeStrict:
	default:
		return fmt.Errorf("keyword_mode must be %q or %q", KeywordModeAdvisory, KeywordModeStrict)
	}
	for _, c := range p.SearchCategories {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("search_categories must not contain empty names")
		}
	}
	return nil
}

// LoadPreferences reads the JSON preferences document.
// Absent keys keep their defaults: max_days_old accepts everything,
// search_categories falls back to DefaultCategories.
func LoadPreferences(filePath string) (*Preferences, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigMissing, filePath)
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	prefs := &Preferences{
		MaxDaysOld:       UnknownAge,
		SearchCategories: append([]string(nil), DefaultCategories...),
		KeywordMode:      KeywordModeAdvisory,
	}
	if err := json.Unmarshal(data, prefs); err != nil {
		return nil, fmt.Errorf("%w: %s is not valid JSON: %v", ErrConfigInvalid, filePath, err)
	}
	if prefs.KeywordMode == "" {
		prefs.KeywordMode = KeywordModeAdvisory
	}

	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	return prefs, nil
}
