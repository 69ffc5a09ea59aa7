// Package types provides type definitions for structured data used throughout the resume-forge system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RegisterRequest represents the request to create a new user with password authentication.
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents a user profile for API responses (avoids import cycle with db package).
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// GenerateResumeRequest starts a generation run. Exactly one of JobDescription
// and JobURL must be set; the handler enforces the mutual exclusion.
type GenerateResumeRequest struct {
	TemplateID     string `json:"template_id" validate:"required,uuid"`
	JobDescription string `json:"job_description" validate:"required_without=JobURL"`
	JobURL         string `json:"job_url" validate:"omitempty,url"`
}

// RefineRequest is a single chat-refinement turn against a generated resume.
type RefineRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the GenerateResumeRequest using the validator.
func (r *GenerateResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RefineRequest using the validator.
func (r *RefineRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
