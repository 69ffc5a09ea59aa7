package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AllPromptFilesLoad(t *testing.T) {
	cases := []struct {
		filename string
		keys     []string
	}{
		{"analyzer.json", []string{"system", "user"}},
		{"generation.json", []string{"system", "user"}},
		{"refine.json", []string{"system"}},
	}

	for _, tc := range cases {
		for _, key := range tc.keys {
			prompt, err := Get(tc.filename, key)
			require.NoError(t, err, "%s/%s", tc.filename, key)
			assert.NotEmpty(t, prompt)
		}
	}
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("analyzer.json", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("missing.json", "system")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	result := Format("Analyze: {{.JobDescription}} for {{.Domain}}", map[string]string{
		"JobDescription": "backend role",
		"Domain":         "Web Development",
	})
	assert.Equal(t, "Analyze: backend role for Web Development", result)
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	result := Format("{{.Known}} and {{.Unknown}}", map[string]string{"Known": "yes"})
	assert.Equal(t, "yes and {{.Unknown}}", result)
}

func TestRefinePrompt_CarriesPlaceholders(t *testing.T) {
	system := MustGet("refine.json", "system")
	assert.True(t, strings.Contains(system, "{{.AuthorizedSkills}}"))
	assert.True(t, strings.Contains(system, "{{.CurrentLatex}}"))
}
