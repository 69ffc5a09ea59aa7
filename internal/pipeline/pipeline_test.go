package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/llm"
)

const analysisResponse = `{
	"required_skills": ["python"],
	"preferred_skills": [],
	"keywords": ["api"],
	"domain": "Web Development",
	"seniority": "Senior"
}`

const cleanContent = `{
	"summary": "Experienced backend developer",
	"skills": "Skills: Python",
	"projects": "",
	"experiences": ""
}`

const taintedContent = `{
	"summary": "Skills: Rust",
	"skills": "",
	"projects": "",
	"experiences": ""
}`

// scriptedClient returns canned responses in order, one per GenerateJSON call.
type scriptedClient struct {
	responses []string
	errs      []error
	calls     int
}

func (c *scriptedClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier, temperature float32) (string, error) {
	i := c.calls
	c.calls++
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i >= len(c.responses) {
		return "", errors.New("unexpected LLM call")
	}
	return c.responses[i], nil
}

func (c *scriptedClient) GenerateWithHistory(ctx context.Context, systemPrompt string, history []llm.Message, tier llm.ModelTier, temperature float32) (string, error) {
	return "", errors.New("not implemented")
}

func (c *scriptedClient) Close() error { return nil }

type fakeStore struct {
	template    *db.ResumeTemplate
	skills      []db.Skill
	projects    []db.Project
	experiences []db.Experience

	created *db.GeneratedResume
}

func (s *fakeStore) GetTemplate(ctx context.Context, userID, templateID uuid.UUID) (*db.ResumeTemplate, error) {
	return s.template, nil
}

func (s *fakeStore) ListSkills(ctx context.Context, userID uuid.UUID) ([]db.Skill, error) {
	return s.skills, nil
}

func (s *fakeStore) ListProjects(ctx context.Context, userID uuid.UUID) ([]db.Project, error) {
	return s.projects, nil
}

func (s *fakeStore) ListExperiences(ctx context.Context, userID uuid.UUID) ([]db.Experience, error) {
	return s.experiences, nil
}

func (s *fakeStore) CreateGeneratedResume(ctx context.Context, r *db.GeneratedResume) (uuid.UUID, int, error) {
	s.created = r
	return uuid.New(), 1, nil
}

type fakeCompiler struct {
	path string
	err  error
}

func (c *fakeCompiler) Compile(ctx context.Context, latexContent string) (string, error) {
	return c.path, c.err
}

func testUser() *db.User {
	return &db.User{ID: uuid.New(), Email: "dev@example.com", FullName: "Dev Example"}
}

func testStore() *fakeStore {
	return &fakeStore{
		template: &db.ResumeTemplate{
			ID:           uuid.New(),
			LatexContent: "\\begin{document}\n%%SUMMARY%%\n%%SKILLS%%\n\\end{document}",
		},
		skills: []db.Skill{
			{Name: "Python"},
			{Name: "API Design"},
		},
		projects: []db.Project{
			{ID: uuid.New(), Title: "Billing Service", Technologies: "python",
				Domain: "Web Development", Impact: strings.Repeat("x", 200)},
		},
	}
}

func TestRun_SucceedsFirstAttempt(t *testing.T) {
	store := testStore()
	client := &scriptedClient{responses: []string{analysisResponse, cleanContent}}

	result, err := New(store, client, nil).Run(context.Background(), testUser(), store.template.ID, "backend role")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Attempts)
	assert.Contains(t, result.LatexOutput, "Experienced backend developer")
	assert.NotContains(t, result.LatexOutput, "%%SUMMARY%%")
	assert.Equal(t, 1, result.Version)
	require.NotNil(t, store.created)
	assert.Equal(t, result.MatchScore, store.created.MatchScore)

	// required 100% * 0.5, top-3 relevance 0.75 * 0.3, keyword alignment 1.0 * 0.2
	assert.InDelta(t, 92.5, result.MatchScore, 0.01)
	assert.Equal(t, 100.0, result.Breakdown.RequiredSkillMatch)
	assert.Equal(t, 75.0, result.Breakdown.ProjectRelevance)
	assert.Equal(t, 100.0, result.Breakdown.KeywordAlignment)
}

func TestRun_RetriesAfterGuardrailRejection(t *testing.T) {
	store := testStore()
	client := &scriptedClient{responses: []string{analysisResponse, taintedContent, cleanContent}}

	result, err := New(store, client, nil).Run(context.Background(), testUser(), store.template.ID, "backend role")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Attempts)
	assert.NotContains(t, result.LatexOutput, "Rust")
}

func TestRun_FailsAfterMaxAttempts(t *testing.T) {
	store := testStore()
	client := &scriptedClient{responses: []string{analysisResponse, taintedContent, taintedContent, taintedContent}}

	_, err := New(store, client, nil).Run(context.Background(), testUser(), store.template.ID, "backend role")

	var pErr *Error
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, StageValidating, pErr.Stage)
	assert.Contains(t, pErr.Message, "rust")
	// One analysis call plus three generation attempts.
	assert.Equal(t, 4, client.calls)
}

func TestRun_RateLimitStopsRetries(t *testing.T) {
	store := testStore()
	client := &scriptedClient{
		responses: []string{analysisResponse},
		errs:      []error{nil, &llm.RateLimitError{RetryAfter: 10 * time.Second}},
	}

	_, err := New(store, client, nil).Run(context.Background(), testUser(), store.template.ID, "role")

	var rateErr *llm.RateLimitError
	require.ErrorAs(t, err, &rateErr)
	var pErr *Error
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, StageGenerating, pErr.Stage)
	// One analysis call and the single rate-limited generation call; the
	// remaining attempts are not spent against a full window.
	assert.Equal(t, 2, client.calls)
}

func TestRun_TemplateNotFound(t *testing.T) {
	store := testStore()
	store.template = nil

	_, err := New(store, &scriptedClient{}, nil).Run(context.Background(), testUser(), uuid.New(), "role")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRun_NoSkills(t *testing.T) {
	store := testStore()
	store.skills = nil

	_, err := New(store, &scriptedClient{}, nil).Run(context.Background(), testUser(), store.template.ID, "role")
	assert.ErrorIs(t, err, ErrNoSkills)
}

func TestRun_AnalysisFailureIsFatal(t *testing.T) {
	store := testStore()
	client := &scriptedClient{errs: []error{errors.New("upstream down")}}

	_, err := New(store, client, nil).Run(context.Background(), testUser(), store.template.ID, "role")

	var pErr *Error
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, StageAnalyzing, pErr.Stage)
	assert.Equal(t, 1, client.calls)
}

func TestRun_CompileFailureIsNonFatal(t *testing.T) {
	store := testStore()
	client := &scriptedClient{responses: []string{analysisResponse, cleanContent}}
	compiler := &fakeCompiler{err: errors.New("pdflatex missing")}

	result, err := New(store, client, compiler).Run(context.Background(), testUser(), store.template.ID, "role")
	require.NoError(t, err)
	assert.Empty(t, result.PDFPath)
}

func TestRun_CompileSuccessRecordsPDFPath(t *testing.T) {
	store := testStore()
	client := &scriptedClient{responses: []string{analysisResponse, cleanContent}}
	compiler := &fakeCompiler{path: "/tmp/out.pdf"}

	result, err := New(store, client, compiler).Run(context.Background(), testUser(), store.template.ID, "role")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out.pdf", result.PDFPath)
	assert.Equal(t, "/tmp/out.pdf", store.created.PDFPath)
}
