package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AppendChatMessage stores one refinement conversation turn for a resume.
func (db *DB) AppendChatMessage(ctx context.Context, resumeID uuid.UUID, role, content string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO chat_messages (resume_id, role, content)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		resumeID, role, content,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to append chat message: %w", err)
	}
	return id, nil
}

// ListChatMessages returns the refinement conversation for a resume in
// chronological order.
func (db *DB) ListChatMessages(ctx context.Context, resumeID uuid.UUID) ([]ChatMessage, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_id, role, content, created_at
		 FROM chat_messages WHERE resume_id = $1 ORDER BY created_at ASC`,
		resumeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	messages := make([]ChatMessage, 0)
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.ResumeID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
