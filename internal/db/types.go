package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"` // never serialized
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Skill is a verified skill entry in a user's profile. Skill names feed both
// the matcher and the guardrail's authorized vocabulary.
type Skill struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Name             string    `json:"name"`
	Category         string    `json:"category,omitempty"`
	ProficiencyLevel int       `json:"proficiency_level"`
	CreatedAt        time.Time `json:"created_at"`
}

// Project is a verified project entry. Technologies is a comma-separated
// list, matching how users enter it.
type Project struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Technologies string     `json:"technologies,omitempty"`
	Impact       string     `json:"impact,omitempty"`
	Domain       string     `json:"domain,omitempty"`
	URL          string     `json:"url,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Experience is a verified employment entry.
type Experience struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	Company      string     `json:"company"`
	Role         string     `json:"role"`
	Description  string     `json:"description"`
	Technologies string     `json:"technologies,omitempty"`
	Location     string     `json:"location,omitempty"`
	IsCurrent    bool       `json:"is_current"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Achievement is a standalone accomplishment entry (award, certification,
// publication). Shown on the profile; not part of the generation inputs.
type Achievement struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ResumeTemplate is a user-owned LaTeX template with placeholder markers.
type ResumeTemplate struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	LatexContent string    `json:"latex_content"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
}

// GeneratedResume is the persisted artifact of a successful pipeline run.
// Version increases monotonically per (user, template) pair. Content and
// version are mutated only by accepted chat-refinement edits.
type GeneratedResume struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	TemplateID     uuid.UUID       `json:"template_id"`
	JobDescription string          `json:"job_description"`
	LatexOutput    string          `json:"latex_output"`
	PDFPath        string          `json:"pdf_path,omitempty"`
	MatchScore     float64         `json:"match_score"`
	MatchedSkills  []string        `json:"matched_skills"`
	MissingSkills  []string        `json:"missing_skills"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ChatMessage is one turn of a resume refinement conversation.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	ResumeID  uuid.UUID `json:"resume_id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SkillUpdate carries the optional fields of a skill update. Nil fields are
// left unchanged; the applier knows the full field set at compile time.
type SkillUpdate struct {
	Name             *string `json:"name,omitempty"`
	Category         *string `json:"category,omitempty"`
	ProficiencyLevel *int    `json:"proficiency_level,omitempty"`
}

// ProjectUpdate carries the optional fields of a project update.
type ProjectUpdate struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Technologies *string    `json:"technologies,omitempty"`
	Impact       *string    `json:"impact,omitempty"`
	Domain       *string    `json:"domain,omitempty"`
	URL          *string    `json:"url,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// ExperienceUpdate carries the optional fields of an experience update.
type ExperienceUpdate struct {
	Company      *string    `json:"company,omitempty"`
	Role         *string    `json:"role,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Technologies *string    `json:"technologies,omitempty"`
	Location     *string    `json:"location,omitempty"`
	IsCurrent    *bool      `json:"is_current,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// AchievementUpdate carries the optional fields of an achievement update.
type AchievementUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

// TemplateUpdate carries the optional fields of a template update.
type TemplateUpdate struct {
	Name         *string `json:"name,omitempty"`
	LatexContent *string `json:"latex_content,omitempty"`
	IsDefault    *bool   `json:"is_default,omitempty"`
}
