package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

var reDigits = regexp.MustCompile(`\d+`)

// ParseStipend extracts the first amount from stipend text such as "₹ 5,000 /month".
// Unpaid, undisclosed and unparseable stipends are 0.
func ParseStipend(text string) int {
	lower := strings.ToLower(text)
	if lower == "" || strings.Contains(lower, "not") || strings.Contains(lower, "unpaid") {
		return 0
	}

	digits := reDigits.FindString(strings.ReplaceAll(text, ",", ""))
	if digits == "" {
		return 0
	}
	amount, err := strconv.Atoi(digits)
	if err != nil || amount < 0 {
		return 0
	}
	return amount
}
