package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// unsafePatternRegex detects common SQL injection and XSS patterns.
var unsafePatternRegex = regexp.MustCompile(`(?i)(--|;|'|"|<script|<\/script|javascript:|on\w+=|union\s+select|drop\s+table|insert\s+into|delete\s+from|update\s+.+\s+set)`)

// SanitizeString trims whitespace and removes control characters from s.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// IsSafeString returns false if s contains patterns commonly associated with
// SQL injection or XSS attacks.
func IsSafeString(s string) bool {
	return !unsafePatternRegex.MatchString(s)
}
