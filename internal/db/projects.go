package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateProject inserts a project for a user and returns its ID.
func (db *DB) CreateProject(ctx context.Context, p *Project) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO projects (user_id, title, description, technologies, impact, domain, url, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		p.UserID, p.Title, p.Description, p.Technologies, p.Impact, p.Domain, p.URL, p.StartDate, p.EndDate,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create project: %w", err)
	}
	return id, nil
}

// ListProjects returns all projects for a user, newest first.
func (db *DB) ListProjects(ctx context.Context, userID uuid.UUID) ([]Project, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, title, description, technologies, impact, domain, url, start_date, end_date, created_at
		 FROM projects WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]Project, 0)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Technologies, &p.Impact,
			&p.Domain, &p.URL, &p.StartDate, &p.EndDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject applies the non-nil fields of the update to a user's project.
func (db *DB) UpdateProject(ctx context.Context, userID, projectID uuid.UUID, update *ProjectUpdate) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE projects SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			technologies = COALESCE($3, technologies),
			impact = COALESCE($4, impact),
			domain = COALESCE($5, domain),
			url = COALESCE($6, url),
			start_date = COALESCE($7, start_date),
			end_date = COALESCE($8, end_date)
		 WHERE id = $9 AND user_id = $10`,
		update.Title, update.Description, update.Technologies, update.Impact,
		update.Domain, update.URL, update.StartDate, update.EndDate, projectID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update project: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteProject removes a user's project.
func (db *DB) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM projects WHERE id = $1 AND user_id = $2`,
		projectID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
