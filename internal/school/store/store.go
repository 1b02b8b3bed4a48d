package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlowther/centsy/internal/school"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetPlan(ctx context.Context, ownerID uuid.UUID) (*school.Plan, error) {
	query := `
		SELECT user_id, flex_dollars_balance, meal_swipes_remaining, term_start, term_end,
			avg_daily_burn, projected_run_out_date
		FROM school_plans
		WHERE user_id = $1
	`

	var plan school.Plan

	err := s.db.QueryRowContext(ctx, query, ownerID).Scan(
		&plan.OwnerID,
		&plan.FlexDollarsBalance,
		&plan.MealSwipesRemaining,
		&plan.TermStart,
		&plan.TermEnd,
		&plan.AvgDailyBurn,
		&plan.ProjectedRunOut,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, school.ErrNotFound
		}

		return nil, fmt.Errorf("getting school plan: %w", err)
	}

	return &plan, nil
}

func (s *Store) UpsertPlan(ctx context.Context, plan *school.Plan) error {
	query := `
		INSERT INTO school_plans (user_id, flex_dollars_balance, meal_swipes_remaining,
			term_start, term_end, avg_daily_burn, projected_run_out_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id)
		DO UPDATE SET flex_dollars_balance = $2, meal_swipes_remaining = $3,
			term_start = $4, term_end = $5, avg_daily_burn = $6, projected_run_out_date = $7
	`

	if _, err := s.db.ExecContext(ctx, query,
		plan.OwnerID,
		plan.FlexDollarsBalance,
		plan.MealSwipesRemaining,
		plan.TermStart,
		plan.TermEnd,
		plan.AvgDailyBurn,
		plan.ProjectedRunOut,
	); err != nil {
		return fmt.Errorf("upserting school plan: %w", err)
	}

	return nil
}
