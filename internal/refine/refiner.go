// Package refine handles interactive improvement of generated resumes. Every
// edit the model proposes is re-validated against the user's authorized skill
// set before it can replace the stored document.
package refine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-forge/internal/guardrail"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/prompts"
)

// historyWindow is how many prior conversation turns are replayed to the model.
const historyWindow = 10

// documentPreviewLen bounds how much of the current LaTeX is embedded in the
// system prompt.
const documentPreviewLen = 3000

// RefineError indicates the refinement request could not be processed.
type RefineError struct {
	Message string
	Cause   error
}

func (e *RefineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("refinement failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("refinement failed: %s", e.Message)
}

func (e *RefineError) Unwrap() error {
	return e.Cause
}

// Result is the outcome of one refinement turn.
type Result struct {
	// Reply is the assistant's message to show the user.
	Reply string
	// UpdatedLatex is the accepted replacement document, empty when the turn
	// produced no change or the change was rejected.
	UpdatedLatex string
	// ValidationPassed is false when a proposed edit was rejected by the
	// guardrail.
	ValidationPassed bool
	// Violations lists the unauthorized terms that caused a rejection.
	Violations []string
}

// Refiner applies conversational edits to a generated resume.
type Refiner struct {
	client llm.Client
}

// New creates a Refiner backed by the given LLM client.
func New(client llm.Client) *Refiner {
	return &Refiner{client: client}
}

// envelope mirrors the JSON contract the model is instructed to emit.
type envelope struct {
	Reply        string  `json:"reply"`
	UpdatedLatex *string `json:"updated_latex"`
	ChangesMade  bool    `json:"changes_made"`
}

// Refine processes one user refinement request. history holds prior turns in
// chronological order; only the most recent ones are replayed.
func (r *Refiner) Refine(ctx context.Context, message, currentLatex string, authorizedSkills []string, history []llm.Message) (*Result, error) {
	preview := currentLatex
	if len(preview) > documentPreviewLen {
		preview = preview[:documentPreviewLen]
	}

	system := prompts.Format(prompts.MustGet("refine.json", "system"), map[string]string{
		"AuthorizedSkills": strings.Join(authorizedSkills, ", "),
		"CurrentLatex":     preview,
	})

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	turns := make([]llm.Message, 0, len(history)+1)
	turns = append(turns, history...)
	turns = append(turns, llm.Message{Role: "user", Content: message})

	response, err := r.client.GenerateWithHistory(ctx, system, turns, llm.TierAdvanced, llm.TemperatureRefinement)
	if err != nil {
		return nil, &RefineError{Message: "LLM call failed", Cause: err}
	}

	env, ok := parseEnvelope(response)
	if !ok {
		// Not JSON at all: treat the whole response as a plain reply.
		return &Result{Reply: response, ValidationPassed: true}, nil
	}

	result := &Result{Reply: env.Reply, ValidationPassed: true}
	if result.Reply == "" {
		result.Reply = response
	}

	if env.UpdatedLatex == nil || !env.ChangesMade {
		return result, nil
	}

	valid, violations := guardrail.Validate(*env.UpdatedLatex, authorizedSkills, true)
	if !valid {
		log.Printf("[REFINE] rejected edit with %d unauthorized terms", len(violations))
		result.ValidationPassed = false
		result.Violations = violations
		result.Reply += fmt.Sprintf(
			"\n\nWARNING: The changes were rejected because they contain unauthorized skills: %s. The resume was not updated.",
			strings.Join(violations, ", "))
		return result, nil
	}

	result.UpdatedLatex = *env.UpdatedLatex
	return result, nil
}

// parseEnvelope attempts to decode the model response as a refinement
// envelope, tolerating markdown fences and surrounding prose.
func parseEnvelope(response string) (*envelope, bool) {
	cleaned := llm.CleanJSONBlock(response)
	if !strings.HasPrefix(cleaned, "{") {
		cleaned = llm.ExtractJSONObject(cleaned)
		if cleaned == "" {
			return nil, false
		}
	}

	var env envelope
	if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
		return nil, false
	}
	return &env, true
}
