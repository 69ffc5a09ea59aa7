package db

import (
	"context"
	"fmt"
)

// migrations are applied in order; every statement is idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS skills (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		proficiency_level INT NOT NULL DEFAULT 3,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		technologies TEXT NOT NULL DEFAULT '',
		impact TEXT NOT NULL DEFAULT '',
		domain TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		start_date DATE,
		end_date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS experiences (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		company TEXT NOT NULL,
		role TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		technologies TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		is_current BOOLEAN NOT NULL DEFAULT FALSE,
		start_date DATE,
		end_date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS achievements (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		achieved_on DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS resume_templates (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		latex_content TEXT NOT NULL,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS generated_resumes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		template_id UUID NOT NULL REFERENCES resume_templates(id) ON DELETE CASCADE,
		job_description TEXT NOT NULL,
		latex_output TEXT NOT NULL,
		pdf_path TEXT NOT NULL DEFAULT '',
		match_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		matched_skills JSONB NOT NULL DEFAULT '[]',
		missing_skills JSONB NOT NULL DEFAULT '[]',
		metadata JSONB,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		resume_id UUID NOT NULL REFERENCES generated_resumes(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_skills_user ON skills(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_experiences_user ON experiences(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_achievements_user ON achievements(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_templates_user ON resume_templates(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_resumes_user ON generated_resumes(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_resume ON chat_messages(resume_id)`,
}

// Migrate applies the schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
