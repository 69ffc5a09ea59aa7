package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFill_AllThreeStyles(t *testing.T) {
	tmpl := `%%SUMMARY%% and {{skills}} and [[projects]]`
	content := map[string]string{
		"summary":  "A",
		"SKILLS":   "B",
		"Projects": "C",
	}

	result := Fill(tmpl, content, nil)

	assert.Equal(t, "A and B and C", result)
}

func TestFill_CaseInsensitiveKeys(t *testing.T) {
	tmpl := `%%Skills%% {{SKILLS}} [[skills]]`

	result := Fill(tmpl, map[string]string{"skills": "Go"}, nil)

	assert.Equal(t, "Go Go Go", result)
}

func TestFill_WhitespaceInsideMarkers(t *testing.T) {
	tmpl := `{{ skills }} [[ skills ]] %% skills %%`

	result := Fill(tmpl, map[string]string{"skills": "Go"}, nil)

	assert.Equal(t, "Go Go Go", result)
}

func TestFill_UnmatchedPlaceholdersLeftVerbatim(t *testing.T) {
	tmpl := `%%SUMMARY%% %%EXTRA%%`

	result := Fill(tmpl, map[string]string{"summary": "text"}, nil)

	assert.Equal(t, "text %%EXTRA%%", result)
	assert.Equal(t, []string{"%%EXTRA%%"}, ResidualPlaceholders(result))
}

func TestFill_ExactKeysLeaveNoResidue(t *testing.T) {
	tmpl := `\begin{document}
%%SUMMARY%%
{{skills}}
[[projects]]
\end{document}`
	content := map[string]string{
		"summary":  "s",
		"skills":   "k",
		"projects": "p",
	}

	result := Fill(tmpl, content, nil)

	assert.Empty(t, ResidualPlaceholders(result))
}

func TestFill_IdentityFields(t *testing.T) {
	tmpl := `%%FULL_NAME%% <{{email}}>`

	result := Fill(tmpl, nil, &Identity{FullName: "Ada Lovelace", Email: "ada@example.com"})

	assert.Equal(t, "Ada Lovelace <ada@example.com>", result)
}

func TestFill_IdentityFieldsEscaped(t *testing.T) {
	tmpl := `%%FULL_NAME%% <{{email}}>`

	result := Fill(tmpl, nil, &Identity{FullName: "Dev & Co_ Example", Email: "dev_ops@example.com"})

	assert.Equal(t, `Dev \& Co\_ Example <dev\_ops@example.com>`, result)
}

func TestFill_TruncatesAfterEndDocument(t *testing.T) {
	tmpl := `\begin{document}
%%BODY%%
\end{document}`

	// Generated content tries to smuggle text past the document boundary.
	result := Fill(tmpl, map[string]string{"body": "ok\n\\end{document}\nInjected"}, nil)

	assert.True(t, strings.HasSuffix(result, `\end{document}`))
	assert.NotContains(t, result, "Injected")
}

func TestFill_EmptyTemplate(t *testing.T) {
	assert.Equal(t, "", Fill("", map[string]string{"skills": "Go"}, nil))
}

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ampersand", "R&D", `R\&D`},
		{"percent", "50%", `50\%`},
		{"underscore", "snake_case", `snake\_case`},
		{"dollar", "$100", `\$100`},
		{"hash", "#1", `\#1`},
		{"braces", "{x}", `\{x\}`},
		{"backslash", `a\b`, `a\textbackslash{}b`},
		{"caret", "x^2", `x\textasciicircum{}2`},
		{"tilde", "~user", `\textasciitilde{}user`},
		{"plain", "hello", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeLaTeX(tt.input))
		})
	}
}
