package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/forge")
	t.Setenv("GEMINI_API_KEY", "test-key")
}

func TestNewServerConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := NewServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 60*time.Second, cfg.LatexTimeout)
	assert.Equal(t, 2, cfg.LatexMaxRuns)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestNewServerConfig_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "test-key")

	_, err := NewServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewServerConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/forge")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := NewServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestNewServerConfig_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "99999")

	_, err := NewServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestNewServerConfig_NonNumericEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")

	_, err := NewServerConfig()
	require.Error(t, err)
}

func TestNewServerConfig_CORSOriginsParsed(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")

	cfg, err := NewServerConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Secret)
	assert.Equal(t, 48, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	require.Error(t, err)
}
