package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"internship-monitor/internal/config"
)

func TestParseRecency(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"", config.UnknownAge},
		{"   ", config.UnknownAge},
		{"Just now", 0},
		{"Few hours ago", 0},
		{"5 hours ago", 0},
		{"an hour ago", 0},
		{"3 days ago", 3},
		{"1 day ago", 1},
		{"day ago", 1},
		{"Today", 1},
		{"2 weeks ago", 14},
		{"1 Week ago", 7},
		{"week ago", 7},
		{"3 months ago", config.UnknownAge},
		{"a month ago", config.UnknownAge},
		{"Posted recently", config.UnknownAge},
		{"Unknown", config.UnknownAge},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseRecency(tt.input), "ParseRecency(%q)", tt.input)
	}
}

func TestParseRecency_HourBeatsDay(t *testing.T) {
	for _, text := range []string{"hour", "2 hours ago", "HOURS AGO"} {
		assert.Equal(t, 0, ParseRecency(text), text)
	}
}
