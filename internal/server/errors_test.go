package server

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/pipeline"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"email conflict", &ErrEmailAlreadyExists{Email: "a@b.c"}, http.StatusConflict},
		{"bad credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"not found", &ErrNotFound{Resource: "resume", ID: uuid.New()}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "name", Message: "required"}, http.StatusBadRequest},
		{"template missing", pipeline.ErrTemplateNotFound, http.StatusNotFound},
		{"no skills", pipeline.ErrNoSkills, http.StatusBadRequest},
		{"rate limited", &llm.RateLimitError{RetryAfter: time.Second}, http.StatusTooManyRequests},
		{"wrapped rate limit", errors.Join(errors.New("call failed"), &llm.RateLimitError{}), http.StatusTooManyRequests},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrNotFound_Message(t *testing.T) {
	id := uuid.New()
	err := &ErrNotFound{Resource: "template", ID: id}
	assert.Contains(t, err.Error(), "template not found")
	assert.Contains(t, err.Error(), id.String())
}
