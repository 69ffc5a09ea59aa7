package server

import (
	"net/http"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/template"
)

type createTemplateRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	LatexContent string `json:"latex_content" validate:"required"`
	IsDefault    bool   `json:"is_default"`
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createTemplateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, firstValidationError(err))
		return
	}

	id, err := s.db.CreateTemplate(r.Context(), &db.ResumeTemplate{
		UserID:       userID,
		Name:         req.Name,
		LatexContent: req.LatexContent,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	// Surface the placeholders so template authors can sanity-check markers.
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":           id,
		"placeholders": template.ResidualPlaceholders(req.LatexContent),
	})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	templates, err := s.db.ListTemplates(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	templateID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	tmpl, err := s.db.GetTemplate(r.Context(), userID, templateID)
	if err != nil {
		writeError(w, err)
		return
	}
	if tmpl == nil {
		writeError(w, &ErrNotFound{Resource: "template", ID: templateID})
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	templateID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var update db.TemplateUpdate
	if err := decodeBody(r, &update); err != nil {
		writeError(w, err)
		return
	}

	found, err := s.db.UpdateTemplate(r.Context(), userID, templateID, &update)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, &ErrNotFound{Resource: "template", ID: templateID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	templateID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	found, err := s.db.DeleteTemplate(r.Context(), userID, templateID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, &ErrNotFound{Resource: "template", ID: templateID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
