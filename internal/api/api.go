package api

import "strings"

// slugify lowercases and dashes a character or realm name the way the
// publisher API expects path segments.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "'", "")
	return s
}
