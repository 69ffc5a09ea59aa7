package matching

import "strings"

// aliasPairs maps common abbreviations to their full names. Checked
// symmetrically: either side of a comparison may carry either form.
// Deliberately a fixed, enumerable table rather than edit distance: a false
// positive here becomes a false authorization downstream in the guardrail.
var aliasPairs = map[string]string{
	"js":       "javascript",
	"ts":       "typescript",
	"py":       "python",
	"golang":   "go",
	"node":     "nodejs",
	"react":    "reactjs",
	"vue":      "vuejs",
	"angular":  "angularjs",
	"postgres": "postgresql",
	"mongo":    "mongodb",
	"k8s":      "kubernetes",
	"tf":       "terraform",
	"aws":      "amazon web services",
	"gcp":      "google cloud platform",
	"ml":       "machine learning",
	"dl":       "deep learning",
	"ai":       "artificial intelligence",
	"ci/cd":    "cicd",
	"ci cd":    "cicd",
}

// Matches reports whether candidate denotes the same skill as any entry of
// authorized. Rules are applied in order, first success wins:
//  1. exact match after normalization
//  2. bidirectional substring containment ("react" matches "react.js")
//  3. the alias table, checked in both directions
func Matches(candidate string, authorized []string) bool {
	normalized := Normalize(candidate)
	if normalized == "" {
		return false
	}

	for _, auth := range authorized {
		authNormalized := Normalize(auth)
		if authNormalized == "" {
			continue
		}

		if normalized == authNormalized {
			return true
		}

		if strings.Contains(normalized, authNormalized) || strings.Contains(authNormalized, normalized) {
			return true
		}

		for short, full := range aliasPairs {
			if (normalized == short && authNormalized == full) ||
				(normalized == full && authNormalized == short) {
				return true
			}
		}
	}

	return false
}
