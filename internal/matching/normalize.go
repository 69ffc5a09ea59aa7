// Package matching provides skill normalization and fuzzy comparison between
// job-description skills and a user's verified skill set.
package matching

import "strings"

// Normalize canonicalizes a skill or term string for comparison: lower-case,
// trim, hyphens/underscores collapsed to spaces, periods and commas stripped.
// It must be applied identically on both sides of every comparison; comparing
// a normalized term against a raw one is a correctness bug.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	return s
}

// NormalizeAll normalizes every entry of a list, dropping entries that
// normalize to the empty string.
func NormalizeAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if n := Normalize(item); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// NormalizeSet normalizes every entry of a list into a set.
func NormalizeSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if n := Normalize(item); n != "" {
			set[n] = true
		}
	}
	return set
}
