// Package pipeline orchestrates the full resume generation run: job
// description analysis, skill matching, project ranking, content generation,
// guardrail validation, typesetting and persistence. Generation and
// validation run in a bounded retry loop; everything before them runs once.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-forge/internal/analyzer"
	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/generation"
	"github.com/jonathan/resume-forge/internal/guardrail"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/matching"
	"github.com/jonathan/resume-forge/internal/ranking"
	"github.com/jonathan/resume-forge/internal/template"
	"github.com/jonathan/resume-forge/internal/types"
)

// maxAttempts bounds the generate-validate retry loop. Attempts are counted
// in total, not per failure kind.
const maxAttempts = 3

// Composite score weights.
const (
	requiredWeight  = 0.5
	relevanceWeight = 0.3
	keywordWeight   = 0.2
)

// Sentinel errors the HTTP layer maps to client-facing statuses.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrNoSkills         = errors.New("no skills in profile")
)

// Stage identifies where in the pipeline a failure occurred.
type Stage string

const (
	StageLoading    Stage = "loading"
	StageAnalyzing  Stage = "analyzing"
	StageGenerating Stage = "generating"
	StageValidating Stage = "validating"
	StagePersisting Stage = "persisting"
)

// Error is a pipeline failure annotated with its stage.
type Error struct {
	Stage   Stage
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pipeline %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("pipeline %s: %s", e.Stage, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Store is the persistence surface the pipeline needs.
type Store interface {
	GetTemplate(ctx context.Context, userID, templateID uuid.UUID) (*db.ResumeTemplate, error)
	ListSkills(ctx context.Context, userID uuid.UUID) ([]db.Skill, error)
	ListProjects(ctx context.Context, userID uuid.UUID) ([]db.Project, error)
	ListExperiences(ctx context.Context, userID uuid.UUID) ([]db.Experience, error)
	CreateGeneratedResume(ctx context.Context, r *db.GeneratedResume) (uuid.UUID, int, error)
}

// Compiler typesets LaTeX to PDF. Compilation failures never fail a run.
type Compiler interface {
	Compile(ctx context.Context, latexContent string) (string, error)
}

// Result is the outcome of a successful generation run.
type Result struct {
	ResumeID    uuid.UUID
	Version     int
	LatexOutput string
	PDFPath     string
	MatchScore  float64
	Breakdown   types.ScoreBreakdown
	SkillMatch  *types.SkillMatchResult
	Rankings    []types.ProjectRanking
	Attempts    int
}

// attemptOutcome records one pass of the generate-validate loop. Exactly one
// of err and violations is meaningful on failure; both empty means the
// attempt was accepted.
type attemptOutcome struct {
	latex      string
	violations []string
	err        error
}

func (a attemptOutcome) accepted() bool {
	return a.err == nil && len(a.violations) == 0
}

// Orchestrator runs the generation pipeline.
type Orchestrator struct {
	store     Store
	analyzer  *analyzer.Analyzer
	generator *generation.Generator
	compiler  Compiler
}

// New creates an Orchestrator. compiler may be nil when no LaTeX toolchain is
// available; runs then produce LaTeX only.
func New(store Store, client llm.Client, compiler Compiler) *Orchestrator {
	return &Orchestrator{
		store:     store,
		analyzer:  analyzer.New(client),
		generator: generation.New(client),
		compiler:  compiler,
	}
}

// Run executes the full pipeline for one user, template and job description.
func (o *Orchestrator) Run(ctx context.Context, user *db.User, templateID uuid.UUID, jobDescription string) (*Result, error) {
	tmpl, err := o.store.GetTemplate(ctx, user.ID, templateID)
	if err != nil {
		return nil, &Error{Stage: StageLoading, Message: "failed to load template", Cause: err}
	}
	if tmpl == nil {
		return nil, ErrTemplateNotFound
	}

	// Profile snapshot loads are independent of each other.
	var (
		skills      []db.Skill
		projects    []db.Project
		experiences []db.Experience
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		skills, err = o.store.ListSkills(gctx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = o.store.ListProjects(gctx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		experiences, err = o.store.ListExperiences(gctx, user.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, &Error{Stage: StageLoading, Message: "failed to load profile", Cause: err}
	}

	if len(skills) == 0 {
		return nil, ErrNoSkills
	}
	skillNames := make([]string, len(skills))
	for i, s := range skills {
		skillNames[i] = s.Name
	}

	analysis, err := o.analyzer.Analyze(ctx, jobDescription)
	if err != nil {
		// Analysis failures are fatal: retrying the whole run would just
		// repeat the same malformed input.
		return nil, &Error{Stage: StageAnalyzing, Message: "analysis failed", Cause: err}
	}

	skillMatch := matching.MatchSkills(analysis, skillNames)
	rankings := ranking.RankProjects(projects, analysis, skillMatch.MatchedSkills)

	// The authorized vocabulary is everything the user has verified: skills,
	// project titles, companies and roles.
	authorized := append([]string{}, skillNames...)
	for _, p := range projects {
		authorized = append(authorized, p.Title)
	}
	for _, e := range experiences {
		authorized = append(authorized, e.Company, e.Role)
	}

	genInput := generation.Input{
		JobDescription: jobDescription,
		MatchedSkills:  skillMatch.MatchedSkills,
		Projects:       orderProjects(projects, rankings),
		Experiences:    experiences,
		Domain:         analysis.Domain,
		Seniority:      analysis.Seniority,
	}

	var outcome attemptOutcome
	attempts := 0
	for attempts = 1; attempts <= maxAttempts; attempts++ {
		outcome = o.attempt(ctx, genInput, tmpl.LatexContent, user, authorized)
		if outcome.accepted() {
			break
		}
		// An exhausted rate limiter fails the whole run immediately; retrying
		// against the same window would burn the remaining attempts for nothing.
		var rateErr *llm.RateLimitError
		if errors.As(outcome.err, &rateErr) {
			return nil, &Error{Stage: StageGenerating, Message: "llm rate limit exhausted", Cause: outcome.err}
		}
		if outcome.err != nil {
			log.Printf("[PIPELINE] attempt %d failed: %v", attempts, outcome.err)
		} else {
			log.Printf("[PIPELINE] attempt %d rejected, %d unauthorized terms: %s",
				attempts, len(outcome.violations), strings.Join(outcome.violations, ", "))
		}
	}
	if !outcome.accepted() {
		attempts = maxAttempts
		if outcome.err != nil {
			return nil, &Error{Stage: StageGenerating,
				Message: fmt.Sprintf("generation failed after %d attempts", maxAttempts), Cause: outcome.err}
		}
		return nil, &Error{Stage: StageValidating,
			Message: fmt.Sprintf("guardrail validation failed after %d attempts, unauthorized terms: %s",
				maxAttempts, strings.Join(outcome.violations, ", "))}
	}

	pdfPath := ""
	if o.compiler != nil {
		path, compileErr := o.compiler.Compile(ctx, outcome.latex)
		if compileErr != nil {
			log.Printf("[PIPELINE] typesetting failed, storing LaTeX without PDF: %v", compileErr)
		} else {
			pdfPath = path
		}
	}

	breakdown := scoreBreakdown(skillMatch, rankings, analysis.Keywords, skillNames)

	metadata, err := json.Marshal(&types.ResumeMetadata{
		JDAnalysis:      analysis,
		SkillMatch:      skillMatch,
		ProjectRankings: rankings,
		ScoreBreakdown:  breakdown,
	})
	if err != nil {
		return nil, &Error{Stage: StagePersisting, Message: "failed to encode metadata", Cause: err}
	}

	resumeID, version, err := o.store.CreateGeneratedResume(ctx, &db.GeneratedResume{
		UserID:         user.ID,
		TemplateID:     templateID,
		JobDescription: jobDescription,
		LatexOutput:    outcome.latex,
		PDFPath:        pdfPath,
		MatchScore:     breakdown.TotalScore,
		MatchedSkills:  skillMatch.MatchedSkills,
		MissingSkills:  skillMatch.MissingSkills,
		Metadata:       metadata,
	})
	if err != nil {
		return nil, &Error{Stage: StagePersisting, Message: "failed to store resume", Cause: err}
	}

	log.Printf("[PIPELINE] stored resume %s v%d, score %.1f, %d attempt(s)",
		resumeID, version, breakdown.TotalScore, attempts)

	return &Result{
		ResumeID:    resumeID,
		Version:     version,
		LatexOutput: outcome.latex,
		PDFPath:     pdfPath,
		MatchScore:  breakdown.TotalScore,
		Breakdown:   breakdown,
		SkillMatch:  skillMatch,
		Rankings:    rankings,
		Attempts:    attempts,
	}, nil
}

// attempt runs one generate-fill-validate pass.
func (o *Orchestrator) attempt(ctx context.Context, in generation.Input, templateLatex string, user *db.User, authorized []string) attemptOutcome {
	content, err := o.generator.Generate(ctx, in)
	if err != nil {
		return attemptOutcome{err: err}
	}

	filled := template.Fill(templateLatex, content, &template.Identity{
		FullName: user.FullName,
		Email:    user.Email,
	})

	valid, violations := guardrail.Validate(filled, authorized, true)
	if !valid {
		return attemptOutcome{violations: violations}
	}
	return attemptOutcome{latex: filled}
}

// orderProjects returns the user's projects in ranking order.
func orderProjects(projects []db.Project, rankings []types.ProjectRanking) []db.Project {
	byID := make(map[string]db.Project, len(projects))
	for _, p := range projects {
		byID[p.ID.String()] = p
	}

	ordered := make([]db.Project, 0, len(rankings))
	for _, r := range rankings {
		if p, ok := byID[r.ProjectID]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// scoreBreakdown computes the composite match score and its components.
func scoreBreakdown(skillMatch *types.SkillMatchResult, rankings []types.ProjectRanking, keywords, skillNames []string) types.ScoreBreakdown {
	avgRelevance := 0.0
	if len(rankings) > 0 {
		top := len(rankings)
		if top > 3 {
			top = 3
		}
		sum := 0.0
		for _, r := range rankings[:top] {
			sum += r.RelevanceScore
		}
		avgRelevance = sum / float64(top)
	}

	keywordAlignment := 0.0
	if len(keywords) > 0 {
		matched := 0
		for _, k := range keywords {
			for _, s := range skillNames {
				if strings.Contains(strings.ToLower(s), strings.ToLower(k)) {
					matched++
					break
				}
			}
		}
		keywordAlignment = float64(matched) / float64(len(keywords))
	}

	total := (skillMatch.RequiredMatchPct/100*requiredWeight +
		avgRelevance*relevanceWeight +
		keywordAlignment*keywordWeight) * 100

	return types.ScoreBreakdown{
		RequiredSkillMatch: skillMatch.RequiredMatchPct,
		ProjectRelevance:   round1(avgRelevance * 100),
		KeywordAlignment:   round1(keywordAlignment * 100),
		TotalScore:         round1(total),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
