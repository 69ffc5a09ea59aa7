// Package generation produces LaTeX section content for resume placeholders.
// The generator is only ever shown verified user data: matched skills, ranked
// projects and stored experiences. Anything else the model might know about
// the user is off the table.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/prompts"
	"github.com/jonathan/resume-forge/internal/schemas"
)

// maxProjects caps how many ranked projects are offered to the model.
const maxProjects = 5

// sectionKeys are the placeholder names the model must fill.
var sectionKeys = []string{"summary", "skills", "projects", "experiences"}

// GenerationError indicates section content could not be produced.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("resume generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Input carries the verified data the generator may draw from. Projects must
// already be ordered by relevance.
type Input struct {
	JobDescription string
	MatchedSkills  []string
	Projects       []db.Project
	Experiences    []db.Experience
	Domain         string
	Seniority      string
}

// Generator produces placeholder content from verified user data.
type Generator struct {
	client llm.Client
}

// New creates a Generator backed by the given LLM client.
func New(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate returns LaTeX content keyed by placeholder name. Every key in
// sectionKeys is present in the result; sections the model omitted are empty.
func (g *Generator) Generate(ctx context.Context, in Input) (map[string]string, error) {
	system := prompts.MustGet("generation.json", "system")
	user := prompts.Format(prompts.MustGet("generation.json", "user"), map[string]string{
		"JobDescription": in.JobDescription,
		"Domain":         in.Domain,
		"Seniority":      in.Seniority,
		"Skills":         skillsText(in.MatchedSkills),
		"Projects":       projectsText(in.Projects),
		"Experiences":    experiencesText(in.Experiences),
	})

	raw, err := g.client.GenerateJSON(ctx, system+"\n\n"+user, llm.TierStandard, llm.TemperatureGeneration)
	if err != nil {
		return nil, &GenerationError{Message: "LLM call failed", Cause: err}
	}

	return parseSections(raw)
}

func parseSections(raw string) (map[string]string, error) {
	if err := schemas.Validate(schemas.SectionContentSchema, raw); err != nil {
		return nil, &GenerationError{Message: "response does not match expected shape", Cause: err}
	}

	content := make(map[string]string)
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, &GenerationError{Message: "response is not valid JSON", Cause: err}
	}

	for _, key := range sectionKeys {
		if _, ok := content[key]; !ok {
			content[key] = ""
		}
	}
	return content, nil
}

func skillsText(skills []string) string {
	if len(skills) == 0 {
		return "No matching skills"
	}
	return strings.Join(skills, ", ")
}

func projectsText(projects []db.Project) string {
	var sb strings.Builder
	for i, p := range projects {
		if i >= maxProjects {
			break
		}
		fmt.Fprintf(&sb, "\n%d. %s: %s", i+1, p.Title, p.Description)
		if p.Technologies != "" {
			fmt.Fprintf(&sb, " (Technologies: %s)", p.Technologies)
		}
		if p.Impact != "" {
			fmt.Fprintf(&sb, " Impact: %s", p.Impact)
		}
	}
	return sb.String()
}

func experiencesText(experiences []db.Experience) string {
	var sb strings.Builder
	for _, e := range experiences {
		fmt.Fprintf(&sb, "\n- %s at %s: %s", e.Role, e.Company, e.Description)
		if e.Technologies != "" {
			fmt.Fprintf(&sb, " (Technologies: %s)", e.Technologies)
		}
	}
	return sb.String()
}
