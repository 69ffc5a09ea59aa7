package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/pipeline"
)

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrNotFound indicates a requested resource does not exist or is not owned
// by the requesting user. The two cases are deliberately indistinguishable.
type ErrNotFound struct {
	Resource string
	ID       uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var rateLimitErr *llm.RateLimitError
	switch {
	case errors.As(err, &rateLimitErr):
		return http.StatusTooManyRequests
	case errors.Is(err, pipeline.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, pipeline.ErrNoSkills):
		return http.StatusBadRequest
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
