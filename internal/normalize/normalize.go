package normalize

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var reWhitespace = regexp.MustCompile(`\s+`)

// Text replaces NBSP with spaces, collapses whitespace runs and trims.
func Text(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Fold lowercases s and strips combining marks so "Bengalūru" compares equal to "bengaluru".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.ToLower(strings.TrimSpace(result))
}

// AbsoluteURL resolves href against base. Absolute http(s) links are kept as-is.
func AbsoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}

	base = strings.TrimRight(base, "/")
	if strings.HasPrefix(href, "/") {
		return base + href
	}
	return base + "/" + href
}

// LastPathSegment returns the final path element of a link without its query or fragment.
func LastPathSegment(href string) string {
	href = strings.TrimSpace(href)
	if idx := strings.IndexAny(href, "?#"); idx > -1 {
		href = href[:idx]
	}
	if u, err := url.Parse(href); err == nil && u.Path != "" {
		href = u.Path
	}
	parts := strings.Split(href, "/")
	return parts[len(parts)-1]
}
