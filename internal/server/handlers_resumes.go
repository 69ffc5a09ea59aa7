package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/resume-forge/internal/ingest"
	"github.com/jonathan/resume-forge/internal/types"
)

// generateResumeResponse is the summary returned after a generation run.
type generateResumeResponse struct {
	ID            string                 `json:"id"`
	Version       int                    `json:"version"`
	MatchScore    float64                `json:"match_score"`
	MatchedSkills []string               `json:"matched_skills"`
	MissingSkills []string               `json:"missing_skills"`
	Breakdown     types.ScoreBreakdown   `json:"score_breakdown"`
	Rankings      []types.ProjectRanking `json:"project_rankings"`
	Suggestions   []string               `json:"improvement_suggestions"`
	PDFAvailable  bool                   `json:"pdf_available"`
	Attempts      int                    `json:"attempts"`
}

// handleGenerateResume runs the full generation pipeline for one request.
// The job description arrives either inline or as a posting URL to ingest.
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req types.GenerateResumeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, firstValidationError(err))
		return
	}
	if req.JobDescription != "" && req.JobURL != "" {
		writeError(w, &ErrValidation{Field: "job_description",
			Message: "job_description and job_url are mutually exclusive"})
		return
	}

	jobDescription := req.JobDescription
	if jobDescription == "" {
		text, err := ingest.JobDescription(r.Context(), req.JobURL, s.ingestOptions)
		if err != nil {
			writeError(w, &ErrValidation{Field: "job_url", Message: err.Error()})
			return
		}
		jobDescription = text
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

	templateID, err := pathIDFromString(req.TemplateID)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.pipeline.Run(r.Context(), user, templateID, jobDescription)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, generateResumeResponse{
		ID:            result.ResumeID.String(),
		Version:       result.Version,
		MatchScore:    result.MatchScore,
		MatchedSkills: result.SkillMatch.MatchedSkills,
		MissingSkills: result.SkillMatch.MissingSkills,
		Breakdown:     result.Breakdown,
		Rankings:      result.Rankings,
		Suggestions:   result.SkillMatch.ImprovementSuggestions,
		PDFAvailable:  result.PDFPath != "",
		Attempts:      result.Attempts,
	})
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	resumes, err := s.db.ListGeneratedResumes(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resumes)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
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

	resume, err := s.db.GetGeneratedResume(r.Context(), userID, resumeID)
	if err != nil {
		writeError(w, err)
		return
	}
	if resume == nil {
		writeError(w, &ErrNotFound{Resource: "resume", ID: resumeID})
		return
	}
	writeJSON(w, http.StatusOK, resume)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
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

	found, err := s.db.DeleteGeneratedResume(r.Context(), userID, resumeID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, &ErrNotFound{Resource: "resume", ID: resumeID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleResumeAnalysis serves the score breakdown snapshot stored with the
// resume, without re-running the pipeline.
func (s *Server) handleResumeAnalysis(w http.ResponseWriter, r *http.Request) {
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

	resume, err := s.db.GetGeneratedResume(r.Context(), userID, resumeID)
	if err != nil {
		writeError(w, err)
		return
	}
	if resume == nil || len(resume.Metadata) == 0 {
		writeError(w, &ErrNotFound{Resource: "resume analysis", ID: resumeID})
		return
	}

	var metadata types.ResumeMetadata
	if err := json.Unmarshal(resume.Metadata, &metadata); err != nil {
		writeError(w, fmt.Errorf("failed to decode stored metadata: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, metadata)
}

// handleResumePDF streams the typeset PDF.
func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
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

	resume, err := s.db.GetGeneratedResume(r.Context(), userID, resumeID)
	if err != nil {
		writeError(w, err)
		return
	}
	if resume == nil || resume.PDFPath == "" || !strings.HasSuffix(resume.PDFPath, ".pdf") {
		writeError(w, &ErrNotFound{Resource: "resume PDF", ID: resumeID})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=resume_v%d.pdf", resume.Version))
	http.ServeFile(w, r, resume.PDFPath)
}
