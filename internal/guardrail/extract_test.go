package guardrail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTerms_SkillSection(t *testing.T) {
	latex := `\section{Skills}
Skills: Python, JavaScript, React, FastAPI`

	terms := ExtractTerms(latex)

	assert.True(t, terms["python"])
	assert.True(t, terms["javascript"])
	assert.True(t, terms["react"])
	assert.True(t, terms["fastapi"])
}

func TestExtractTerms_SectionHeaderSynonyms(t *testing.T) {
	tests := []struct {
		name  string
		latex string
	}{
		{"technologies", "Technologies: Go, Rust"},
		{"tools", "Tools: Docker; Kubernetes"},
		{"frameworks", "Frameworks - Django | Flask"},
		{"languages", "languages: python/go"},
		{"platforms", "Platforms: AWS, GCP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := ExtractTerms(tt.latex)
			assert.NotEmpty(t, terms)
		})
	}
}

func TestExtractTerms_BoldSpans(t *testing.T) {
	latex := `Developed services using \textbf{Python} and \textbf{Docker}.`

	terms := ExtractTerms(latex)

	assert.True(t, terms["python"])
	assert.True(t, terms["docker"])
}

func TestExtractTerms_ItemizedLists(t *testing.T) {
	latex := `\begin{itemize}
\item Python, JavaScript
\item React, Docker
\end{itemize}`

	terms := ExtractTerms(latex)

	assert.True(t, terms["python"])
	assert.True(t, terms["javascript"])
	assert.True(t, terms["react"])
	assert.True(t, terms["docker"])
}

func TestExtractTerms_Empty(t *testing.T) {
	assert.Empty(t, ExtractTerms(""))
}

func TestExtractTerms_LongItemsSkipped(t *testing.T) {
	// Entries of 50+ characters are not plausible skill names.
	long := strings.Repeat("x", 60)
	latex := "Skills: Go, " + long

	terms := ExtractTerms(latex)

	assert.True(t, terms["go"])
	assert.False(t, terms[long])
}

func TestExtractTerms_NormalizesCandidates(t *testing.T) {
	latex := `Skills: React.JS, Machine-Learning`

	terms := ExtractTerms(latex)

	assert.True(t, terms["reactjs"])
	assert.True(t, terms["machine learning"])
}
