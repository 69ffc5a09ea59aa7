// Package analyzer extracts structured hiring signals from raw job
// description text using an LLM. Analysis failures are fatal for a
// generation run: without a parsed job description there is nothing
// to match against.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/prompts"
	"github.com/jonathan/resume-forge/internal/schemas"
	"github.com/jonathan/resume-forge/internal/types"
)

// AnalysisError indicates the job description could not be analyzed.
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job description analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job description analysis failed: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Analyzer turns job description text into a structured JDAnalysis.
type Analyzer struct {
	client llm.Client
}

// New creates an Analyzer backed by the given LLM client.
func New(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze extracts required skills, preferred skills, keywords, domain and
// seniority from a job description.
func (a *Analyzer) Analyze(ctx context.Context, jobDescription string) (*types.JDAnalysis, error) {
	if jobDescription == "" {
		return nil, &AnalysisError{Message: "job description is empty"}
	}

	system := prompts.MustGet("analyzer.json", "system")
	user := prompts.Format(prompts.MustGet("analyzer.json", "user"), map[string]string{
		"JobDescription": jobDescription,
	})

	raw, err := a.client.GenerateJSON(ctx, system+"\n\n"+user, llm.TierStandard, llm.TemperatureAnalysis)
	if err != nil {
		return nil, &AnalysisError{Message: "LLM call failed", Cause: err}
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		return nil, err
	}

	log.Printf("[ANALYZER] extracted %d required, %d preferred skills, domain=%s",
		len(analysis.RequiredSkills), len(analysis.PreferredSkills), analysis.Domain)
	return analysis, nil
}

// analysisPayload mirrors the JSON contract the model is instructed to emit.
type analysisPayload struct {
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	Keywords        []string `json:"keywords"`
	Domain          string   `json:"domain"`
	Seniority       string   `json:"seniority"`
}

// parseAnalysis validates and decodes a raw LLM response into a JDAnalysis.
func parseAnalysis(raw string) (*types.JDAnalysis, error) {
	if err := schemas.Validate(schemas.JDAnalysisSchema, raw); err != nil {
		return nil, &AnalysisError{Message: "response does not match expected shape", Cause: err}
	}

	var payload analysisPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &AnalysisError{Message: "response is not valid JSON", Cause: err}
	}

	return types.NewJDAnalysis(
		payload.RequiredSkills,
		payload.PreferredSkills,
		payload.Keywords,
		payload.Domain,
		payload.Seniority,
	), nil
}
