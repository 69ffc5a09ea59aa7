package server

import (
	"net/http"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/types"
)

// refineResponse is the outcome of one chat refinement turn.
type refineResponse struct {
	Reply            string   `json:"reply"`
	ResumeUpdated    bool     `json:"resume_updated"`
	ValidationPassed bool     `json:"validation_passed"`
	Violations       []string `json:"violations,omitempty"`
	Version          int      `json:"version,omitempty"`
}

// handleRefineResume applies one conversational edit to a generated resume.
// Accepted edits replace the stored LaTeX and bump the version; rejected
// edits leave the resume untouched.
func (s *Server) handleRefineResume(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	resumeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req types.RefineRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, firstValidationError(err))
		return
	}

	resume, err := s.db.GetGeneratedResume(r.Context(), userID, resumeID)
	if err != nil {
		writeError(w, err)
		return
	}
	if resume == nil {
		writeError(w, &ErrNotFound{Resource: "resume", ID: resumeID})
		return
	}

	skills, err := s.db.ListSkills(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	authorized := make([]string, len(skills))
	for i, skill := range skills {
		authorized[i] = skill.Name
	}

	stored, err := s.db.ListChatMessages(r.Context(), resumeID)
	if err != nil {
		writeError(w, err)
		return
	}
	history := make([]llm.Message, len(stored))
	for i, m := range stored {
		history[i] = llm.Message{Role: m.Role, Content: m.Content}
	}

	result, err := s.refiner.Refine(r.Context(), req.Message, resume.LatexOutput, authorized, history)
	if err != nil {
		writeError(w, err)
		return
	}

	// The conversation is recorded regardless of whether the edit stuck.
	if _, err := s.db.AppendChatMessage(r.Context(), resumeID, "user", req.Message); err != nil {
		writeError(w, err)
		return
	}
	if _, err := s.db.AppendChatMessage(r.Context(), resumeID, "assistant", result.Reply); err != nil {
		writeError(w, err)
		return
	}

	resp := refineResponse{
		Reply:            result.Reply,
		ValidationPassed: result.ValidationPassed,
		Violations:       result.Violations,
		Version:          resume.Version,
	}

	if result.UpdatedLatex != "" {
		version, err := s.db.UpdateResumeContent(r.Context(), userID, resumeID, result.UpdatedLatex)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.ResumeUpdated = true
		resp.Version = version
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleChatHistory returns the refinement conversation for a resume.
func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	resumeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	// Ownership check before exposing the conversation.
	resume, err := s.db.GetGeneratedResume(r.Context(), userID, resumeID)
	if err != nil {
		writeError(w, err)
		return
	}
	if resume == nil {
		writeError(w, &ErrNotFound{Resource: "resume", ID: resumeID})
		return
	}

	messages, err := s.db.ListChatMessages(r.Context(), resumeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}
