package refine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/llm"
)

type fakeClient struct {
	response string
	err      error

	system  string
	history []llm.Message
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier, temperature float32) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeClient) GenerateWithHistory(ctx context.Context, systemPrompt string, history []llm.Message, tier llm.ModelTier, temperature float32) (string, error) {
	f.system = systemPrompt
	f.history = history
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestRefine_AcceptsValidatedEdit(t *testing.T) {
	client := &fakeClient{response: `{
		"reply": "Tightened the summary wording.",
		"updated_latex": "\\section{Skills} Skills: Python \\end{document}",
		"changes_made": true
	}`}

	result, err := New(client).Refine(context.Background(),
		"make the summary punchier",
		"\\section{Skills} Skills: Python \\end{document}",
		[]string{"Python"}, nil)
	require.NoError(t, err)

	assert.True(t, result.ValidationPassed)
	assert.Equal(t, "Tightened the summary wording.", result.Reply)
	assert.NotEmpty(t, result.UpdatedLatex)
	assert.Empty(t, result.Violations)
}

func TestRefine_RejectsUnauthorizedEdit(t *testing.T) {
	client := &fakeClient{response: `{
		"reply": "Added Rust as requested.",
		"updated_latex": "Skills: Python, Rust",
		"changes_made": true
	}`}

	result, err := New(client).Refine(context.Background(),
		"add rust", "Skills: Python", []string{"Python"}, nil)
	require.NoError(t, err)

	assert.False(t, result.ValidationPassed)
	assert.Empty(t, result.UpdatedLatex)
	assert.Contains(t, result.Violations, "rust")
	assert.Contains(t, result.Reply, "rejected")
}

func TestRefine_PlainTextFallback(t *testing.T) {
	client := &fakeClient{response: "I cannot add Kubernetes because it is not in your skill set."}

	result, err := New(client).Refine(context.Background(),
		"add kubernetes", "Skills: Python", []string{"Python"}, nil)
	require.NoError(t, err)

	assert.True(t, result.ValidationPassed)
	assert.Equal(t, client.response, result.Reply)
	assert.Empty(t, result.UpdatedLatex)
}

func TestRefine_NoChangesMade(t *testing.T) {
	client := &fakeClient{response: `{
		"reply": "The resume already reads well.",
		"updated_latex": null,
		"changes_made": false
	}`}

	result, err := New(client).Refine(context.Background(),
		"any suggestions?", "Skills: Python", []string{"Python"}, nil)
	require.NoError(t, err)

	assert.True(t, result.ValidationPassed)
	assert.Empty(t, result.UpdatedLatex)
}

func TestRefine_FencedEnvelopeParsed(t *testing.T) {
	client := &fakeClient{response: "```json\n{\"reply\": \"done\", \"updated_latex\": null, \"changes_made\": false}\n```"}

	result, err := New(client).Refine(context.Background(),
		"tweak", "doc", []string{"Python"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "done", result.Reply)
}

func TestRefine_HistoryWindowed(t *testing.T) {
	client := &fakeClient{response: `{"reply": "ok", "updated_latex": null, "changes_made": false}`}

	history := make([]llm.Message, 15)
	for i := range history {
		history[i] = llm.Message{Role: "user", Content: "turn"}
	}

	_, err := New(client).Refine(context.Background(), "latest", "doc", []string{"Python"}, history)
	require.NoError(t, err)

	// 10 replayed turns plus the new message.
	assert.Len(t, client.history, 11)
	assert.Equal(t, "latest", client.history[10].Content)
}

func TestRefine_SystemPromptCarriesAuthorizedSkills(t *testing.T) {
	client := &fakeClient{response: `{"reply": "ok", "updated_latex": null, "changes_made": false}`}

	_, err := New(client).Refine(context.Background(), "msg", "doc body", []string{"Python", "Go"}, nil)
	require.NoError(t, err)

	assert.Contains(t, client.system, "Python, Go")
	assert.Contains(t, client.system, "doc body")
}

func TestRefine_DocumentPreviewTruncated(t *testing.T) {
	client := &fakeClient{response: `{"reply": "ok", "updated_latex": null, "changes_made": false}`}

	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'a'
	}

	_, err := New(client).Refine(context.Background(), "msg", string(long), []string{"Python"}, nil)
	require.NoError(t, err)
	assert.Less(t, len(client.system), 4500)
}

func TestRefine_LLMFailure(t *testing.T) {
	cause := errors.New("rate limited")
	_, err := New(&fakeClient{err: cause}).Refine(context.Background(), "msg", "doc", nil, nil)

	var rErr *RefineError
	require.ErrorAs(t, err, &rErr)
	assert.ErrorIs(t, err, cause)
}
