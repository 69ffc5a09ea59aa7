// Package types holds the shared data structures of the generation pipeline:
// job description analysis, skill match results, project rankings and the
// metadata snapshot persisted with every generated resume.
package types

import "strings"

// Default values applied when the analyzer response omits a field.
const (
	DefaultDomain    = "General"
	DefaultSeniority = "Mid-Level"
)

// JDAnalysis is the structured form of a job description. Skill and keyword
// entries are lowercase, trimmed and de-duplicated; preferred skills never
// repeat required ones.
type JDAnalysis struct {
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	Keywords        []string `json:"keywords"`
	Domain          string   `json:"domain"`
	Seniority       string   `json:"seniority"`
}

// NewJDAnalysis builds a JDAnalysis, normalizing entries and applying
// defaults for missing domain and seniority.
func NewJDAnalysis(required, preferred, keywords []string, domain, seniority string) *JDAnalysis {
	seen := make(map[string]bool)

	cleanList := func(entries []string) []string {
		out := make([]string, 0, len(entries))
		for _, entry := range entries {
			cleaned := strings.ToLower(strings.TrimSpace(entry))
			if cleaned == "" || seen[cleaned] {
				continue
			}
			seen[cleaned] = true
			out = append(out, cleaned)
		}
		return out
	}

	analysis := &JDAnalysis{
		RequiredSkills:  cleanList(required),
		PreferredSkills: cleanList(preferred),
	}

	// Keywords de-duplicate among themselves, not against the skill lists.
	seen = make(map[string]bool)
	analysis.Keywords = cleanList(keywords)

	analysis.Domain = strings.TrimSpace(domain)
	if analysis.Domain == "" {
		analysis.Domain = DefaultDomain
	}
	analysis.Seniority = strings.TrimSpace(seniority)
	if analysis.Seniority == "" {
		analysis.Seniority = DefaultSeniority
	}

	return analysis
}

// AllSkills returns required and preferred skills as one list. Entries are
// already disjoint by construction.
func (a *JDAnalysis) AllSkills() []string {
	all := make([]string, 0, len(a.RequiredSkills)+len(a.PreferredSkills))
	all = append(all, a.RequiredSkills...)
	all = append(all, a.PreferredSkills...)
	return all
}
