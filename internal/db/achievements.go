package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateAchievement inserts an achievement for a user and returns its ID.
func (db *DB) CreateAchievement(ctx context.Context, a *Achievement) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO achievements (user_id, title, description, achieved_on)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		a.UserID, a.Title, a.Description, a.Date,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create achievement: %w", err)
	}
	return id, nil
}

// ListAchievements returns all achievements for a user, newest first.
func (db *DB) ListAchievements(ctx context.Context, userID uuid.UUID) ([]Achievement, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, title, description, achieved_on, created_at
		 FROM achievements WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	achievements := make([]Achievement, 0)
	for rows.Next() {
		var a Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Date, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// UpdateAchievement applies the non-nil fields of the update to a user's
// achievement. Returns false if it does not exist or belongs to another user.
func (db *DB) UpdateAchievement(ctx context.Context, userID, achievementID uuid.UUID, update *AchievementUpdate) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE achievements SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			achieved_on = COALESCE($3, achieved_on)
		 WHERE id = $4 AND user_id = $5`,
		update.Title, update.Description, update.Date, achievementID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update achievement: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAchievement removes a user's achievement. Returns false if nothing
// was deleted.
func (db *DB) DeleteAchievement(ctx context.Context, userID, achievementID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM achievements WHERE id = $1 AND user_id = $2`,
		achievementID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete achievement: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
