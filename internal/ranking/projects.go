// Package ranking scores a user's projects by relevance to an analyzed job
// description.
package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/matching"
	"github.com/jonathan/resume-forge/internal/types"
)

// Weights for the relevance scoring components.
const (
	overlapWeight = 0.5
	domainWeight  = 0.3
	impactWeight  = 0.2
)

// impactSaturationChars is the impact-text length at which the impact
// component reaches its maximum.
const impactSaturationChars = 200.0

// RankProjects scores every project against the JD analysis and the matched
// skill set, returning rankings sorted by relevance descending. The sort is
// stable: ties keep input order. Projects without technologies still appear,
// with a zero overlap contribution.
func RankProjects(projects []db.Project, analysis *types.JDAnalysis, matchedSkills []string) []types.ProjectRanking {
	// The relevant-term set is the normalized union of matched skills and JD
	// keywords.
	relevant := matching.NormalizeSet(append(append([]string{}, matchedSkills...), analysis.Keywords...))

	rankings := make([]types.ProjectRanking, 0, len(projects))
	for _, project := range projects {
		techs := splitTechnologies(project.Technologies)

		// Overlap counts distinct technologies; the matching list keeps the
		// entries as the user wrote them, duplicates included.
		overlap := 0.0
		matchingTechs := make([]string, 0, len(techs))
		seen := make(map[string]bool, len(techs))
		for _, tech := range techs {
			if relevant[tech] {
				matchingTechs = append(matchingTechs, tech)
				seen[tech] = true
			}
		}
		if len(relevant) > 0 {
			overlap = float64(len(seen)) / float64(max(len(relevant), 1))
		}

		domainMatch := scoreDomain(project.Domain, analysis.Domain)

		impact := 0.0
		if project.Impact != "" {
			impact = math.Min(float64(len(project.Impact))/impactSaturationChars, 1.0)
		}

		score := overlap*overlapWeight + domainMatch*domainWeight + impact*impactWeight

		rankings = append(rankings, types.ProjectRanking{
			ProjectID:            project.ID.String(),
			Title:                project.Title,
			RelevanceScore:       round3(score),
			MatchingTechnologies: matchingTechs,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].RelevanceScore > rankings[j].RelevanceScore
	})

	return rankings
}

// scoreDomain compares project and JD domains: 1.0 for an exact normalized
// match, 0.5 when one contains the other, 0 otherwise.
func scoreDomain(projectDomain, jdDomain string) float64 {
	if projectDomain == "" || jdDomain == "" {
		return 0.0
	}

	p := matching.Normalize(projectDomain)
	j := matching.Normalize(jdDomain)

	switch {
	case p == j:
		return 1.0
	case strings.Contains(p, j) || strings.Contains(j, p):
		return 0.5
	default:
		return 0.0
	}
}

// splitTechnologies splits a comma-separated technologies field into
// normalized entries.
func splitTechnologies(technologies string) []string {
	if technologies == "" {
		return nil
	}

	parts := strings.Split(technologies, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if n := matching.Normalize(part); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// round3 rounds to three decimals, the persistence convention for relevance
// scores.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
