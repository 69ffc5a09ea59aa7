package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateTemplate inserts a resume template for a user and returns its ID.
func (db *DB) CreateTemplate(ctx context.Context, t *ResumeTemplate) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resume_templates (user_id, name, latex_content, is_default)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		t.UserID, t.Name, t.LatexContent, t.IsDefault,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create template: %w", err)
	}
	return id, nil
}

// GetTemplate retrieves a user's template by ID. Returns nil if not found.
func (db *DB) GetTemplate(ctx context.Context, userID, templateID uuid.UUID) (*ResumeTemplate, error) {
	var t ResumeTemplate
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, name, latex_content, is_default, created_at
		 FROM resume_templates WHERE id = $1 AND user_id = $2`,
		templateID, userID,
	).Scan(&t.ID, &t.UserID, &t.Name, &t.LatexContent, &t.IsDefault, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &t, nil
}

// ListTemplates returns all templates for a user, newest first.
func (db *DB) ListTemplates(ctx context.Context, userID uuid.UUID) ([]ResumeTemplate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, name, latex_content, is_default, created_at
		 FROM resume_templates WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]ResumeTemplate, 0)
	for rows.Next() {
		var t ResumeTemplate
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.LatexContent, &t.IsDefault, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// UpdateTemplate applies the non-nil fields of the update to a user's template.
func (db *DB) UpdateTemplate(ctx context.Context, userID, templateID uuid.UUID, update *TemplateUpdate) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resume_templates SET
			name = COALESCE($1, name),
			latex_content = COALESCE($2, latex_content),
			is_default = COALESCE($3, is_default)
		 WHERE id = $4 AND user_id = $5`,
		update.Name, update.LatexContent, update.IsDefault, templateID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteTemplate removes a user's template.
func (db *DB) DeleteTemplate(ctx context.Context, userID, templateID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM resume_templates WHERE id = $1 AND user_id = $2`,
		templateID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
