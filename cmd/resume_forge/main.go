// Package main provides the entry point for the resume-forge HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_forge",
	Short: "Resume Forge HTTP API Server",
	Long:  "Resume Forge generates job-tailored LaTeX resumes from verified profile data, with guardrails that keep fabricated skills out of the output.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
