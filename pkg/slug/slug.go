package slug

import (
	"regexp"
	"strings"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	dashTrimRe = regexp.MustCompile(`^-+|-+$`)
)

// Generate builds a URL-friendly slug from a display name.
// Example: "Dr. Pankaj Kumar Chaurasiya" -> "dr-pankaj-kumar-chaurasiya"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnum.ReplaceAllString(s, "-")
	return dashTrimRe.ReplaceAllString(s, "")
}
