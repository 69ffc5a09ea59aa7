package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateExperience inserts an employment entry for a user and returns its ID.
func (db *DB) CreateExperience(ctx context.Context, e *Experience) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO experiences (user_id, company, role, description, technologies, location, is_current, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		e.UserID, e.Company, e.Role, e.Description, e.Technologies, e.Location, e.IsCurrent, e.StartDate, e.EndDate,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create experience: %w", err)
	}
	return id, nil
}

// ListExperiences returns all employment entries for a user, newest first.
func (db *DB) ListExperiences(ctx context.Context, userID uuid.UUID) ([]Experience, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, company, role, description, technologies, location, is_current, start_date, end_date, created_at
		 FROM experiences WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer rows.Close()

	experiences := make([]Experience, 0)
	for rows.Next() {
		var e Experience
		if err := rows.Scan(&e.ID, &e.UserID, &e.Company, &e.Role, &e.Description, &e.Technologies,
			&e.Location, &e.IsCurrent, &e.StartDate, &e.EndDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		experiences = append(experiences, e)
	}
	return experiences, rows.Err()
}

// UpdateExperience applies the non-nil fields of the update to a user's experience.
func (db *DB) UpdateExperience(ctx context.Context, userID, experienceID uuid.UUID, update *ExperienceUpdate) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE experiences SET
			company = COALESCE($1, company),
			role = COALESCE($2, role),
			description = COALESCE($3, description),
			technologies = COALESCE($4, technologies),
			location = COALESCE($5, location),
			is_current = COALESCE($6, is_current),
			start_date = COALESCE($7, start_date),
			end_date = COALESCE($8, end_date)
		 WHERE id = $9 AND user_id = $10`,
		update.Company, update.Role, update.Description, update.Technologies,
		update.Location, update.IsCurrent, update.StartDate, update.EndDate, experienceID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update experience: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteExperience removes a user's employment entry.
func (db *DB) DeleteExperience(ctx context.Context, userID, experienceID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM experiences WHERE id = $1 AND user_id = $2`,
		experienceID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete experience: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
