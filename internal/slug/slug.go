// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var pattern = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowers, strips, and dash-joins a name into a URL-safe slug.
func Make(name string) string {
	s := pattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}
