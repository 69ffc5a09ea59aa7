package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/ingest"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/pipeline"
	"github.com/jonathan/resume-forge/internal/typeset"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the resume generation pipeline once",
	Long: `Generate a tailored resume for an existing user against one of their templates.

The job description comes from --job (a text file) or --job-url (fetched and
cleaned); exactly one must be provided.`,
	RunE: runGenerate,
}

var (
	generateEmail    string
	generateTemplate string
	generateJobPath  string
	generateJobURL   string
)

func init() {
	generateCmd.Flags().StringVar(&generateEmail, "email", "", "Email of the user whose profile to use (required)")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "", "Template ID (required)")
	generateCmd.Flags().StringVarP(&generateJobPath, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	generateCmd.Flags().StringVar(&generateJobURL, "job-url", "", "URL to fetch the job description from (mutually exclusive with --job)")

	_ = generateCmd.MarkFlagRequired("email")
	_ = generateCmd.MarkFlagRequired("template")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	if generateJobPath == "" && generateJobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if generateJobPath != "" && generateJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	templateID, err := uuid.Parse(generateTemplate)
	if err != nil {
		return fmt.Errorf("invalid template id: %w", err)
	}

	cfg, err := config.NewServerConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	user, err := database.GetUserByEmail(ctx, generateEmail)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("no user with email %s", generateEmail)
	}

	jobDescription, err := loadJobDescription(ctx)
	if err != nil {
		return err
	}

	gemini, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = gemini.Close() }()

	client := llm.NewLimitedClient(gemini, llm.NewLimiter(cfg.RateLimitPerMinute, time.Minute), cfg.LLMTimeout)
	compiler := typeset.New(cfg.LatexOutputDir, cfg.LatexTimeout, cfg.LatexMaxRuns)

	result, err := pipeline.New(database, client, compiler).Run(ctx, user, templateID, jobDescription)
	if err != nil {
		return err
	}

	fmt.Printf("Resume %s (version %d) generated in %d attempt(s)\n", result.ResumeID, result.Version, result.Attempts)
	fmt.Printf("Match score: %.1f\n", result.MatchScore)
	if result.PDFPath != "" {
		fmt.Printf("PDF: %s\n", result.PDFPath)
	} else {
		fmt.Println("PDF: not compiled (LaTeX source stored)")
	}
	return nil
}

func loadJobDescription(ctx context.Context) (string, error) {
	if generateJobPath != "" {
		data, err := os.ReadFile(generateJobPath)
		if err != nil {
			return "", fmt.Errorf("failed to read job description file: %w", err)
		}
		return string(data), nil
	}

	text, err := ingest.JobDescription(ctx, generateJobURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job description: %w", err)
	}
	return text, nil
}
