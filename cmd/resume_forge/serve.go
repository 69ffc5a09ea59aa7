package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing authentication, profile CRUD, resume generation and chat refinement endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("port") {
		// Flag wins over environment
		if err := os.Setenv("PORT", strconv.Itoa(servePort)); err != nil {
			return err
		}
	}

	cfg, err := config.NewServerConfig()
	if err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
