package util

import (
	"regexp"
	"strings"
)

var (
	slugStripRegex    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRegex = regexp.MustCompile(`[\s_-]+`)
)

// Slugify turns a human-readable title into a URL-safe slug: lowercase,
// everything outside word/space/hyphen stripped, runs of whitespace,
// underscores and hyphens collapsed to a single hyphen.
// Empty input yields an empty string.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStripRegex.ReplaceAllString(s, "")
	s = slugCollapseRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
