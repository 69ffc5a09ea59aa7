// Package config provides environment-driven configuration for the server
// and the generation pipeline.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds everything the HTTP server and pipeline need at startup.
type ServerConfig struct {
	Host string
	Port int

	DatabaseURL  string
	GeminiAPIKey string

	// CORSOrigins is the comma-separated allowlist for browser clients.
	CORSOrigins []string

	// RateLimitPerMinute caps LLM calls across the whole process.
	RateLimitPerMinute int
	// LLMTimeout bounds a single LLM call.
	LLMTimeout time.Duration

	LatexOutputDir string
	LatexTimeout   time.Duration
	LatexMaxRuns   int
}

// NewServerConfig reads configuration from the environment. DATABASE_URL and
// GEMINI_API_KEY are required; everything else has a default.
func NewServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Host:           getEnv("HOST", "0.0.0.0"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		LatexOutputDir: getEnv("LATEX_OUTPUT_DIR", "output"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required but not set")
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8000); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = getEnvInt("RATE_LIMIT_PER_MINUTE", 30); err != nil {
		return nil, err
	}
	if cfg.LatexMaxRuns, err = getEnvInt("LATEX_MAX_RUNS", 2); err != nil {
		return nil, err
	}

	llmTimeoutSecs, err := getEnvInt("LLM_TIMEOUT_SECONDS", 120)
	if err != nil {
		return nil, err
	}
	cfg.LLMTimeout = time.Duration(llmTimeoutSecs) * time.Second

	latexTimeoutSecs, err := getEnvInt("LATEX_TIMEOUT_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	cfg.LatexTimeout = time.Duration(latexTimeoutSecs) * time.Second

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be at least 1, got: %d", c.RateLimitPerMinute)
	}
	if c.LatexMaxRuns < 1 {
		return fmt.Errorf("LATEX_MAX_RUNS must be at least 1, got: %d", c.LatexMaxRuns)
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return parsed, nil
}
