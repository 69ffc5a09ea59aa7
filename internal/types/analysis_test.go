package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewJDAnalysis_NormalizesAndDeduplicates(t *testing.T) {
	a := NewJDAnalysis(
		[]string{" Python ", "GO", "python"},
		[]string{"Docker", "go", ""},
		[]string{"API", "api", " grpc "},
		"", "",
	)

	assert.Equal(t, []string{"python", "go"}, a.RequiredSkills)
	assert.Equal(t, []string{"docker"}, a.PreferredSkills)
	assert.Equal(t, []string{"api", "grpc"}, a.Keywords)
	assert.Equal(t, DefaultDomain, a.Domain)
	assert.Equal(t, DefaultSeniority, a.Seniority)
}

func TestNewJDAnalysis_KeepsProvidedDomainAndSeniority(t *testing.T) {
	a := NewJDAnalysis(nil, nil, nil, " Web Development ", "Senior")
	assert.Equal(t, "Web Development", a.Domain)
	assert.Equal(t, "Senior", a.Seniority)
}

func TestAllSkills_UnionPreservesOrder(t *testing.T) {
	a := NewJDAnalysis([]string{"python"}, []string{"docker"}, nil, "", "")
	assert.Equal(t, []string{"python", "docker"}, a.AllSkills())
}
