// Package urlsan validates, sanitizes, and extracts URLs from free text.
// It fails closed: anything that does not pass the conservative grammar
// is dropped or sanitized to the empty string.
package urlsan

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// hostPattern is a conservative DNS-label grammar: labels of 1-63
	// alphanumeric characters with internal hyphens, at least one dot,
	// and an alphabetic final label of two or more characters.
	hostPattern = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

	// candidatePattern is deliberately permissive; matches are vetted by
	// IsValid before they count.
	candidatePattern = regexp.MustCompile(`(?i)\b(?:https?|ftp)://\S+`)

	tagPattern = regexp.MustCompile(`<[^>]*>`)
)

const disallowed = `<>'"()`

var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
}

// IsValid reports whether s parses as a URL with an http, https, or ftp
// scheme, a hostname matching the DNS-label grammar, and a path free of
// angle brackets, quotes, and parentheses.
func IsValid(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if !allowedSchemes[u.Scheme] {
		return false
	}
	if !hostPattern.MatchString(u.Hostname()) {
		return false
	}
	return !strings.ContainsAny(u.Path, disallowed)
}

// Sanitize re-serializes a valid URL and strips tag-like substrings and
// the disallowed character set from the result. Invalid input yields the
// empty string. Sanitize(Sanitize(x)) == Sanitize(x) for all x.
func Sanitize(s string) string {
	if !IsValid(s) {
		return ""
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	if u.Path == "" {
		u.Path = "/"
	}
	out := u.String()
	out = tagPattern.ReplaceAllString(out, "")
	for _, c := range disallowed {
		out = strings.ReplaceAll(out, string(c), "")
	}
	return out
}

// Extract scans text for URL-looking substrings, keeps the ones passing
// IsValid, and sanitizes each survivor. Order of appearance is
// preserved; invalid matches are dropped, not replaced.
func Extract(text string) []string {
	var urls []string
	for _, m := range candidatePattern.FindAllString(text, -1) {
		m = strings.TrimRight(m, ".,;:")
		if !IsValid(m) {
			continue
		}
		if s := Sanitize(m); s != "" {
			urls = append(urls, s)
		}
	}
	return urls
}
