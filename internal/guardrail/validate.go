package guardrail

import (
	"log"
	"strings"

	"github.com/jonathan/resume-forge/internal/matching"
)

// Normalized-length bounds for candidates considered at validation time.
const (
	minTermLen = 2
	maxTermLen = 60
)

// tolerantViolationLimit is how many unauthorized terms tolerant mode allows.
// Tolerant mode is never used on the generation pipeline's primary gate.
const tolerantViolationLimit = 3

// Validate extracts candidate technology terms from the generated LaTeX and
// checks each against the authorized vocabulary (user skills, project titles,
// company names, role titles). It returns whether the document passes and the
// list of unauthorized terms found.
//
// A candidate is authorized when it equals an authorized term exactly, when it
// contains or is contained by an authorized term (guarded so that terms of
// length <= 3 only match exactly, which keeps "and" from authorizing via
// "android"), or when any constituent word of a multi-word candidate is itself
// an authorized term. The substring rule can still conflate distinct terms
// that share a root longer than three characters; this is a known heuristic
// limitation, not a soundness guarantee.
func Validate(generatedLatex string, authorizedTerms []string, strict bool) (bool, []string) {
	extracted := ExtractTerms(generatedLatex)
	authorized := matching.NormalizeSet(authorizedTerms)

	violations := make([]string, 0)

	for term := range extracted {
		if stoplist[term] {
			continue
		}
		if len(term) < minTermLen || len(term) > maxTermLen {
			continue
		}

		if isAuthorized(term, authorized) {
			continue
		}

		violations = append(violations, term)
	}

	passed := len(violations) == 0
	if !strict {
		passed = len(violations) <= tolerantViolationLimit
	}

	if len(violations) > 0 {
		log.Printf("[GUARDRAIL] found %d unauthorized terms: %v", len(violations), violations)
	}

	return passed, violations
}

func isAuthorized(term string, authorized map[string]bool) bool {
	if authorized[term] {
		return true
	}

	for auth := range authorized {
		if strings.Contains(auth, term) || strings.Contains(term, auth) {
			// Short terms only match exactly, otherwise common substrings
			// like "and" would authorize through "android".
			if len(term) > 3 || term == auth {
				return true
			}
		}
	}

	// A multi-word candidate is often a sentence fragment the extractor picked
	// up by mistake; accept it if any constituent word is authorized.
	if strings.Contains(term, " ") {
		for _, word := range strings.Fields(term) {
			if authorized[word] {
				return true
			}
		}
	}

	return false
}
