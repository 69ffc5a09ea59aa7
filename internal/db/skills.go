package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateSkill inserts a skill for a user and returns its ID.
func (db *DB) CreateSkill(ctx context.Context, userID uuid.UUID, name, category string, proficiency int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO skills (user_id, name, category, proficiency_level)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, name, category, proficiency,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create skill: %w", err)
	}
	return id, nil
}

// ListSkills returns all skills for a user, newest first.
func (db *DB) ListSkills(ctx context.Context, userID uuid.UUID) ([]Skill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, name, category, proficiency_level, created_at
		 FROM skills WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	skills := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Category, &s.ProficiencyLevel, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// UpdateSkill applies the non-nil fields of the update to a user's skill.
// Returns false if the skill does not exist or belongs to another user.
func (db *DB) UpdateSkill(ctx context.Context, userID, skillID uuid.UUID, update *SkillUpdate) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE skills SET
			name = COALESCE($1, name),
			category = COALESCE($2, category),
			proficiency_level = COALESCE($3, proficiency_level)
		 WHERE id = $4 AND user_id = $5`,
		update.Name, update.Category, update.ProficiencyLevel, skillID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update skill: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteSkill removes a user's skill. Returns false if nothing was deleted.
func (db *DB) DeleteSkill(ctx context.Context, userID, skillID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM skills WHERE id = $1 AND user_id = $2`,
		skillID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete skill: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
