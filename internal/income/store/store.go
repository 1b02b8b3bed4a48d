package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlowther/centsy/internal/income"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateSource(ctx context.Context, src *income.Source) error {
	query := `
		INSERT INTO income_sources (user_id, name, amount, frequency, last_received)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		src.OwnerID, src.Name, src.Amount, src.Frequency, src.LastReceived,
	).Scan(&src.ID)
	if err != nil {
		return fmt.Errorf("creating income source: %w", err)
	}

	return nil
}

func (s *Store) ListSources(ctx context.Context, ownerID uuid.UUID) ([]*income.Source, error) {
	query := `
		SELECT id, user_id, name, amount, frequency, last_received
		FROM income_sources
		WHERE user_id = $1
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing income sources: %w", err)
	}
	defer rows.Close()

	var sources []*income.Source

	for rows.Next() {
		var src income.Source

		var freq string

		if err := rows.Scan(&src.ID, &src.OwnerID, &src.Name, &src.Amount, &freq, &src.LastReceived); err != nil {
			return nil, fmt.Errorf("scanning income source: %w", err)
		}

		src.Frequency = income.Frequency(freq)
		sources = append(sources, &src)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating income sources: %w", err)
	}

	return sources, nil
}

func (s *Store) UpdateSource(ctx context.Context, src *income.Source) error {
	query := `
		UPDATE income_sources
		SET name = $1, amount = $2, frequency = $3, last_received = $4
		WHERE id = $5 AND user_id = $6
	`

	res, err := s.db.ExecContext(ctx, query,
		src.Name, src.Amount, src.Frequency, src.LastReceived, src.ID, src.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating income source: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return income.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteSource(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM income_sources WHERE id = $1 AND user_id = $2`

	if _, err := s.db.ExecContext(ctx, query, id, ownerID); err != nil {
		return fmt.Errorf("deleting income source: %w", err)
	}

	return nil
}
