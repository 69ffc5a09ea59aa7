package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/config"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	resolved, err := svc.UserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestJWTService_RejectsEmptyToken(t *testing.T) {
	_, err := testJWTService().ValidateToken("")
	require.Error(t, err)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := testJWTService().GenerateToken(uuid.New())
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{Secret: "different", ExpirationHours: 1})
	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := testJWTService().ValidateToken("not.a.token")
	require.Error(t, err)
}
