// Package guardrail independently re-derives the technologies claimed in
// generated LaTeX and rejects any term that is not traceable to the user's
// authorized vocabulary. It is the final line of defense against model
// hallucination: it never trusts the generator, only the document text.
package guardrail

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-forge/internal/matching"
)

// Candidate length bounds applied at extraction time, before normalization.
const (
	minCandidateLen = 2
	maxCandidateLen = 50
)

var (
	// commandWithArg matches \command{arg} so the braced text can be retained.
	commandWithArg = regexp.MustCompile(`\\[a-zA-Z]+\{([^}]*)\}`)
	// bareCommand matches control sequences without arguments.
	bareCommand = regexp.MustCompile(`\\[a-zA-Z]+`)
	// specialChars are LaTeX symbol characters dropped from the clean view.
	specialChars = regexp.MustCompile(`[{}\\%$&~^]`)

	// skillSection matches "Skills: a, b, c" style lines for any of the fixed
	// section-header synonyms.
	skillSection = regexp.MustCompile(`(?i)(?:skills?|technologies?|tools?|frameworks?|languages?|platforms?)\s*[:\-|]\s*([^\n]+)`)
	// listDelims splits csv-style skill lists.
	listDelims = regexp.MustCompile(`[,;|/]`)
	// itemDelims splits itemized entries; slash is kept intact there since
	// list items legitimately contain paths and fractions.
	itemDelims = regexp.MustCompile(`[,;|]`)
	// itemEntry matches \item lines in the original (unstripped) markup.
	itemEntry = regexp.MustCompile(`(?m)\\?item\s+(.+)$`)
	// boldSpan matches bold-wrapped spans, which frequently carry skill names.
	boldSpan = regexp.MustCompile(`\\textbf\{([^}]+)\}`)
	// braceResidue removes leftover braces and backslashes from item text.
	braceResidue = regexp.MustCompile(`[{}\\]`)
)

// ExtractTerms recovers candidate skill/technology tokens from LaTeX content
// using three deliberately overlapping strategies, since the generator's
// output format is not fully controlled. All candidates are normalized and
// returned as a set.
func ExtractTerms(latexContent string) map[string]bool {
	extracted := make(map[string]bool)

	// Strip commands but keep their braced text, then drop remaining control
	// sequences and special symbols. This is the clean-text view.
	clean := commandWithArg.ReplaceAllString(latexContent, "$1")
	clean = bareCommand.ReplaceAllString(clean, " ")
	clean = specialChars.ReplaceAllString(clean, " ")

	// Strategy 1: labeled skill sections ("Skills: Python, Java, React").
	for _, m := range skillSection.FindAllStringSubmatch(clean, -1) {
		for _, item := range listDelims.Split(m[1], -1) {
			item = strings.TrimSpace(item)
			if len(item) >= minCandidateLen && len(item) < maxCandidateLen {
				addTerm(extracted, item)
			}
		}
	}

	// Strategy 2: itemized lists, taken from the original markup so the item
	// markers are still visible.
	for _, m := range itemEntry.FindAllStringSubmatch(latexContent, -1) {
		text := commandWithArg.ReplaceAllString(m[1], "$1")
		text = strings.TrimSpace(braceResidue.ReplaceAllString(text, ""))
		if text == "" || len(text) >= maxCandidateLen {
			continue
		}
		for _, part := range itemDelims.Split(text, -1) {
			part = strings.TrimSpace(part)
			if len(part) >= minCandidateLen {
				addTerm(extracted, part)
			}
		}
	}

	// Strategy 3: bold spans.
	for _, m := range boldSpan.FindAllStringSubmatch(latexContent, -1) {
		addTerm(extracted, m[1])
	}

	return extracted
}

func addTerm(set map[string]bool, term string) {
	if n := matching.Normalize(term); n != "" {
		set[n] = true
	}
}
