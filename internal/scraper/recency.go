package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"internship-monitor/internal/config"
)

var (
	reDaysAgo  = regexp.MustCompile(`(\d+)\s*day`)
	reWeeksAgo = regexp.MustCompile(`(\d+)\s*week`)
)

// ParseRecency turns "posted X ago" text into days old.
// Empty, month-old and unrecognised text is config.UnknownAge.
func ParseRecency(text string) int {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return config.UnknownAge
	}

	switch {
	case strings.Contains(text, "just now"),
		strings.Contains(text, "few hours ago"),
		strings.Contains(text, "hour"):
		return 0
	case strings.Contains(text, "day"):
		if n, ok := leadingCount(reDaysAgo, text); ok {
			return n
		}
		return 1
	case strings.Contains(text, "week"):
		if n, ok := leadingCount(reWeeksAgo, text); ok {
			return n * 7
		}
		return 7
	case strings.Contains(text, "month"):
		return config.UnknownAge
	}
	return config.UnknownAge
}

func leadingCount(re *regexp.Regexp, text string) (int, bool) {
	matches := re.FindStringSubmatch(text)
	if len(matches) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
