package server

import (
	"net/http"

	"github.com/jonathan/resume-forge/internal/types"
)

// handleRegister creates a new account and returns a token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, firstValidationError(err))
		return
	}

	user, err := s.users.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.LoginResponse{User: user, Token: token})
}

// handleLogin verifies credentials and returns a token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, firstValidationError(err))
		return
	}

	user, err := s.users.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.LoginResponse{User: user, Token: token})
}

// handleMe returns the authenticated user's profile.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeError(w, &ErrNotFound{Resource: "user", ID: userID})
		return
	}
	writeJSON(w, http.StatusOK, toAPIUser(user))
}
