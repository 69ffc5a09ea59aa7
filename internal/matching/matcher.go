package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-forge/internal/types"
)

// maxSuggestedSkills caps how many missing required skills are named in the
// improvement suggestion.
const maxSuggestedSkills = 5

// MatchSkills classifies every JD skill (union of required and preferred,
// de-duplicated) as matched or missing against the user's verified skill
// names, and computes the match percentages. Only matched skills are ever
// passed to content generation.
func MatchSkills(analysis *types.JDAnalysis, userSkillNames []string) *types.SkillMatchResult {
	allSkills := analysis.AllSkills()

	matched := make([]string, 0, len(allSkills))
	missing := make([]string, 0)

	for _, skill := range allSkills {
		if Matches(skill, userSkillNames) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	// Required coverage is computed only over required skills. The denominator
	// is floored at 1 so an empty required list yields 0% rather than NaN.
	requiredMatched := 0
	missingRequired := make([]string, 0)
	for _, skill := range analysis.RequiredSkills {
		if Matches(skill, userSkillNames) {
			requiredMatched++
		} else {
			missingRequired = append(missingRequired, skill)
		}
	}
	requiredTotal := max(len(analysis.RequiredSkills), 1)
	requiredMatchPct := round1(float64(requiredMatched) / float64(requiredTotal) * 100)

	total := max(len(allSkills), 1)
	matchScore := round1(float64(len(matched)) / float64(total) * 100)

	suggestions := make([]string, 0, 3)
	if len(missingRequired) > 0 {
		shown := missingRequired
		if len(shown) > maxSuggestedSkills {
			shown = shown[:maxSuggestedSkills]
		}
		suggestions = append(suggestions,
			fmt.Sprintf("Consider learning these required skills: %s", strings.Join(shown, ", ")))
	}
	if matchScore < 50 {
		suggestions = append(suggestions,
			"Your skill overlap is below 50%. Consider targeting roles more aligned with your expertise.")
	}
	if matchScore >= 70 {
		suggestions = append(suggestions,
			"Strong match! Focus on highlighting your relevant project experience.")
	}

	return &types.SkillMatchResult{
		MatchedSkills:          matched,
		MissingSkills:          missing,
		MatchScore:             matchScore,
		RequiredMatchPct:       requiredMatchPct,
		ImprovementSuggestions: suggestions,
	}
}

// round1 rounds to one decimal place, the convention for percentage scores.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
