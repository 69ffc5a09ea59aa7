package ranking

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/types"
)

func project(title, technologies, domain, impact string) db.Project {
	return db.Project{
		ID:           uuid.New(),
		Title:        title,
		Technologies: technologies,
		Domain:       domain,
		Impact:       impact,
	}
}

func TestRankProjects_SortedDescending(t *testing.T) {
	analysis := types.NewJDAnalysis([]string{"python", "go"}, nil, []string{"api"}, "Web Development", "")
	projects := []db.Project{
		project("Low", "", "", ""),
		project("High", "python, go, api", "Web Development", strings.Repeat("x", 200)),
		project("Mid", "python", "", ""),
	}

	rankings := RankProjects(projects, analysis, []string{"python", "go"})

	require.Len(t, rankings, 3)
	assert.Equal(t, "High", rankings[0].Title)
	assert.Equal(t, "Mid", rankings[1].Title)
	assert.Equal(t, "Low", rankings[2].Title)
	for i := 1; i < len(rankings); i++ {
		assert.GreaterOrEqual(t, rankings[i-1].RelevanceScore, rankings[i].RelevanceScore)
	}
}

func TestRankProjects_FullMatchScore(t *testing.T) {
	// All relevant terms covered, exact domain, saturated impact: score 1.0.
	analysis := types.NewJDAnalysis([]string{"python"}, nil, nil, "Web Development", "")
	p := project("P", "python", "Web Development", strings.Repeat("a", 250))

	rankings := RankProjects([]db.Project{p}, analysis, []string{"python"})

	require.Len(t, rankings, 1)
	assert.Equal(t, 1.0, rankings[0].RelevanceScore)
	assert.Equal(t, []string{"python"}, rankings[0].MatchingTechnologies)
}

func TestRankProjects_DuplicateTechnologiesCountOnce(t *testing.T) {
	analysis := types.NewJDAnalysis([]string{"python", "go"}, nil, nil, "", "")
	p := project("P", "python, python", "", "")

	rankings := RankProjects([]db.Project{p}, analysis, []string{"python", "go"})

	require.Len(t, rankings, 1)
	// One distinct tech out of two relevant terms: 0.5 overlap * 0.5 weight.
	assert.Equal(t, 0.25, rankings[0].RelevanceScore)
	// The matching list keeps the entries as the user wrote them.
	assert.Equal(t, []string{"python", "python"}, rankings[0].MatchingTechnologies)
}

func TestRankProjects_EmptyTechnologiesStillRanked(t *testing.T) {
	analysis := types.NewJDAnalysis([]string{"python"}, nil, nil, "Web Development", "")
	p := project("NoTech", "", "Web Development", "")

	rankings := RankProjects([]db.Project{p}, analysis, []string{"python"})

	require.Len(t, rankings, 1)
	// Only the domain component contributes: 0.3 * 1.0.
	assert.Equal(t, 0.3, rankings[0].RelevanceScore)
	assert.Empty(t, rankings[0].MatchingTechnologies)
}

func TestRankProjects_DomainSubstringHalfCredit(t *testing.T) {
	analysis := types.NewJDAnalysis(nil, nil, nil, "Web", "")
	p := project("P", "", "Web Development", "")

	rankings := RankProjects([]db.Project{p}, analysis, nil)

	require.Len(t, rankings, 1)
	assert.Equal(t, 0.15, rankings[0].RelevanceScore)
}

func TestRankProjects_ImpactSaturation(t *testing.T) {
	analysis := types.NewJDAnalysis(nil, nil, nil, "", "")

	short := project("Short", "", "", strings.Repeat("y", 100))
	long := project("Long", "", "", strings.Repeat("y", 1000))

	rankings := RankProjects([]db.Project{short, long}, analysis, nil)

	require.Len(t, rankings, 2)
	// 100/200 = 0.5 impact vs capped 1.0.
	assert.Equal(t, "Long", rankings[0].Title)
	assert.Equal(t, 0.2, rankings[0].RelevanceScore)
	assert.Equal(t, 0.1, rankings[1].RelevanceScore)
}

func TestRankProjects_ScoresInRange(t *testing.T) {
	analysis := types.NewJDAnalysis([]string{"go", "python"}, []string{"docker"}, []string{"api", "grpc"}, "Backend", "")
	projects := []db.Project{
		project("A", "go, python, docker, api, grpc", "Backend", strings.Repeat("i", 500)),
		project("B", "cobol", "Frontend", ""),
		project("C", "", "", ""),
	}

	rankings := RankProjects(projects, analysis, []string{"go", "python", "docker"})

	for _, r := range rankings {
		assert.GreaterOrEqual(t, r.RelevanceScore, 0.0)
		assert.LessOrEqual(t, r.RelevanceScore, 1.0)
	}
}

func TestRankProjects_StableTies(t *testing.T) {
	analysis := types.NewJDAnalysis(nil, nil, nil, "", "")
	projects := []db.Project{
		project("First", "", "", ""),
		project("Second", "", "", ""),
	}

	rankings := RankProjects(projects, analysis, nil)

	require.Len(t, rankings, 2)
	assert.Equal(t, "First", rankings[0].Title)
	assert.Equal(t, "Second", rankings[1].Title)
}
