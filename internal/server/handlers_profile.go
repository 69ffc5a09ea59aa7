package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/server/middleware"
)

// userID resolves the authenticated user from the request context.
func (s *Server) userID(r *http.Request) (uuid.UUID, error) {
	return middleware.GetUserID(r)
}

// pathID parses a UUID path segment.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "must be a UUID"}
	}
	return id, nil
}

// pathIDFromString parses a UUID carried in a request body field.
func pathIDFromString(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "template_id", Message: "must be a UUID"}
	}
	return id, nil
}

type createSkillRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=100"`
	Category         string `json:"category" validate:"max=100"`
	ProficiencyLevel int    `json:"proficiency_level" validate:"omitempty,min=1,max=5"`
}

func (s *Server) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createSkillRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, firstValidationError(err))
		return
	}

	id, err := s.db.CreateSkill(r.Context(), userID, req.Name, req.Category, req.ProficiencyLevel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uuid.UUID{"id": id})
}

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	skills, err := s.db.ListSkills(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	skillID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var update db.SkillUpdate
	if err := decodeBody(r, &update); err != nil {
		writeError(w, err)
		return
	}

	found, err := s.db.UpdateSkill(r.Context(), userID, skillID, &update)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, &ErrNotFound{Resource: "skill", ID: skillID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	skillID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	found, err := s.db.DeleteSkill(r.Context(), userID, skillID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, &ErrNotFound{Resource: "skill", ID: skillID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createProjectRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=255"`
	Description  string `json:"description" validate:"required"`
	Technologies string `json:"technologies"`
	Impact       string `json:"impact"`
	Domain       string `json:"domain" validate:"max=100"`
	URL          string `json:"url" validate:"omitempty,url"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createProjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, firstValidationError(err))
		return
	}

	id, err := s.db.CreateProject(r.Context(), &db.Project{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Technologies: req.Technologies,
		Impact:       req.Impact,
		Domain:       req.Domain,
		URL:          req.URL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uuid.UUID{"id": id})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	projects, err := s.db.ListProjects(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	projectID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var update db.ProjectUpdate
	if err := decodeBody(r, &update); err != nil {
		writeError(w, err)
		return
	}

	found, err := s.db.UpdateProject(r.Context(), userID, projectID, &update)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, &ErrNotFound{Resource: "project", ID: projectID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	projectID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	found, err := s.db.DeleteProject(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, &ErrNotFound{Resource: "project", ID: projectID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createExperienceRequest struct {
	Company      string `json:"company" validate:"required,min=1,max=255"`
	Role         string `json:"role" validate:"required,min=1,max=255"`
	Description  string `json:"description" validate:"required"`
	Technologies string `json:"technologies"`
	Location     string `json:"location" validate:"max=255"`
	IsCurrent    bool   `json:"is_current"`
}

func (s *Server) handleCreateExperience(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createExperienceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, firstValidationError(err))
		return
	}

	id, err := s.db.CreateExperience(r.Context(), &db.Experience{
		UserID:       userID,
		Company:      req.Company,
		Role:         req.Role,
		Description:  req.Description,
		Technologies: req.Technologies,
		Location:     req.Location,
		IsCurrent:    req.IsCurrent,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uuid.UUID{"id": id})
}

func (s *Server) handleListExperiences(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	experiences, err := s.db.ListExperiences(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, experiences)
}

func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	experienceID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var update db.ExperienceUpdate
	if err := decodeBody(r, &update); err != nil {
		writeError(w, err)
		return
	}

	found, err := s.db.UpdateExperience(r.Context(), userID, experienceID, &update)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, &ErrNotFound{Resource: "experience", ID: experienceID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	experienceID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	found, err := s.db.DeleteExperience(r.Context(), userID, experienceID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, &ErrNotFound{Resource: "experience", ID: experienceID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createAchievementRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
}

func (s *Server) handleCreateAchievement(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createAchievementRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, firstValidationError(err))
		return
	}

	id, err := s.db.CreateAchievement(r.Context(), &db.Achievement{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uuid.UUID{"id": id})
}

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	achievements, err := s.db.ListAchievements(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, achievements)
}

func (s *Server) handleUpdateAchievement(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	achievementID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var update db.AchievementUpdate
	if err := decodeBody(r, &update); err != nil {
		writeError(w, err)
		return
	}

	found, err := s.db.UpdateAchievement(r.Context(), userID, achievementID, &update)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, &ErrNotFound{Resource: "achievement", ID: achievementID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAchievement(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	achievementID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	found, err := s.db.DeleteAchievement(r.Context(), userID, achievementID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, &ErrNotFound{Resource: "achievement", ID: achievementID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
