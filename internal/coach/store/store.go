package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlowther/centsy/internal/coach"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateMessage(ctx context.Context, msg *coach.Message) error {
	query := `
		INSERT INTO coach_messages (id, user_id, created_at, role, content)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := s.db.ExecContext(ctx, query,
		msg.ID, msg.OwnerID, msg.Timestamp, msg.Role, msg.Content,
	); err != nil {
		return fmt.Errorf("creating coach message: %w", err)
	}

	return nil
}

func (s *Store) ListMessages(ctx context.Context, ownerID uuid.UUID) ([]coach.Message, error) {
	query := `
		SELECT id, user_id, created_at, role, content
		FROM coach_messages
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing coach messages: %w", err)
	}
	defer rows.Close()

	var messages []coach.Message

	for rows.Next() {
		var m coach.Message

		if err := rows.Scan(&m.ID, &m.OwnerID, &m.Timestamp, &m.Role, &m.Content); err != nil {
			return nil, fmt.Errorf("scanning coach message: %w", err)
		}

		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating coach messages: %w", err)
	}

	return messages, nil
}
