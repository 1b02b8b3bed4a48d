package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Upsert(ctx context.Context, ownerID uuid.UUID, b budget.Budget) error {
	query := `
		INSERT INTO category_budgets (user_id, category, monthly_budget, spent_to_date, icon, color)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, category)
		DO UPDATE SET monthly_budget = $3, spent_to_date = $4, icon = $5, color = $6
	`

	if _, err := s.db.ExecContext(ctx, query,
		ownerID, b.Category, b.Monthly, b.SpentToDate, b.Icon, b.Color,
	); err != nil {
		return fmt.Errorf("upserting budget: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, ownerID uuid.UUID, category string) (*budget.Budget, error) {
	query := `
		SELECT category, monthly_budget, spent_to_date, icon, color
		FROM category_budgets
		WHERE user_id = $1 AND category = $2
	`

	var b budget.Budget

	err := s.db.QueryRowContext(ctx, query, ownerID, category).Scan(
		&b.Category, &b.Monthly, &b.SpentToDate, &b.Icon, &b.Color,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return &b, nil
}

func (s *Store) List(ctx context.Context, ownerID uuid.UUID) ([]budget.Budget, error) {
	query := `
		SELECT category, monthly_budget, spent_to_date, icon, color
		FROM category_budgets
		WHERE user_id = $1
		ORDER BY category
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []budget.Budget

	for rows.Next() {
		var b budget.Budget

		if err := rows.Scan(&b.Category, &b.Monthly, &b.SpentToDate, &b.Icon, &b.Color); err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budgets: %w", err)
	}

	return budgets, nil
}

func (s *Store) AddSpent(ctx context.Context, ownerID uuid.UUID, category string, amount decimal.Decimal) error {
	query := `
		UPDATE category_budgets
		SET spent_to_date = spent_to_date + $3
		WHERE user_id = $1 AND category = $2
	`

	res, err := s.db.ExecContext(ctx, query, ownerID, category, amount)
	if err != nil {
		return fmt.Errorf("adding spend to budget: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return budget.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, ownerID uuid.UUID, category string) error {
	query := `DELETE FROM category_budgets WHERE user_id = $1 AND category = $2`

	if _, err := s.db.ExecContext(ctx, query, ownerID, category); err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	return nil
}
