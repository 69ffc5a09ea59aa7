package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateGeneratedResume persists a successful pipeline artifact. The version
// is assigned inside the insert as one more than the number of resumes already
// stored for the same (user, template) pair.
func (db *DB) CreateGeneratedResume(ctx context.Context, r *GeneratedResume) (uuid.UUID, int, error) {
	matched, err := json.Marshal(r.MatchedSkills)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("failed to marshal matched skills: %w", err)
	}
	missing, err := json.Marshal(r.MissingSkills)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("failed to marshal missing skills: %w", err)
	}

	var id uuid.UUID
	var version int
	err = db.pool.QueryRow(ctx,
		`INSERT INTO generated_resumes
			(user_id, template_id, job_description, latex_output, pdf_path,
			 match_score, matched_skills, missing_skills, metadata, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			(SELECT COUNT(*) + 1 FROM generated_resumes WHERE user_id = $1 AND template_id = $2))
		 RETURNING id, version`,
		r.UserID, r.TemplateID, r.JobDescription, r.LatexOutput, r.PDFPath,
		r.MatchScore, matched, missing, r.Metadata,
	).Scan(&id, &version)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("failed to create generated resume: %w", err)
	}
	return id, version, nil
}

// GetGeneratedResume retrieves a user's generated resume. Returns nil if not found.
func (db *DB) GetGeneratedResume(ctx context.Context, userID, resumeID uuid.UUID) (*GeneratedResume, error) {
	var r GeneratedResume
	var matched, missing []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, template_id, job_description, latex_output, pdf_path,
			match_score, matched_skills, missing_skills, metadata, version, created_at, updated_at
		 FROM generated_resumes WHERE id = $1 AND user_id = $2`,
		resumeID, userID,
	).Scan(&r.ID, &r.UserID, &r.TemplateID, &r.JobDescription, &r.LatexOutput, &r.PDFPath,
		&r.MatchScore, &matched, &missing, &r.Metadata, &r.Version, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get generated resume: %w", err)
	}

	if err := json.Unmarshal(matched, &r.MatchedSkills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matched skills: %w", err)
	}
	if err := json.Unmarshal(missing, &r.MissingSkills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal missing skills: %w", err)
	}
	return &r, nil
}

// ListGeneratedResumes returns resume summaries for a user, newest first. The
// LaTeX body is omitted from the listing.
func (db *DB) ListGeneratedResumes(ctx context.Context, userID uuid.UUID) ([]GeneratedResume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, template_id, job_description, pdf_path, match_score, version, created_at, updated_at
		 FROM generated_resumes WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list generated resumes: %w", err)
	}
	defer rows.Close()

	resumes := make([]GeneratedResume, 0)
	for rows.Next() {
		var r GeneratedResume
		if err := rows.Scan(&r.ID, &r.UserID, &r.TemplateID, &r.JobDescription, &r.PDFPath,
			&r.MatchScore, &r.Version, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generated resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, rows.Err()
}

// UpdateResumeContent replaces the LaTeX body of a resume and increments its
// version. Called only for edits that passed guardrail validation.
func (db *DB) UpdateResumeContent(ctx context.Context, userID, resumeID uuid.UUID, latexOutput string) (int, error) {
	var version int
	err := db.pool.QueryRow(ctx,
		`UPDATE generated_resumes
		 SET latex_output = $1, version = version + 1, updated_at = NOW()
		 WHERE id = $2 AND user_id = $3
		 RETURNING version`,
		latexOutput, resumeID, userID,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("resume not found: %s", resumeID)
		}
		return 0, fmt.Errorf("failed to update resume content: %w", err)
	}
	return version, nil
}

// DeleteGeneratedResume removes a user's generated resume.
func (db *DB) DeleteGeneratedResume(ctx context.Context, userID, resumeID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM generated_resumes WHERE id = $1 AND user_id = $2`,
		resumeID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete generated resume: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
