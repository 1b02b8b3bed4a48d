package school

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Repository interface {
	GetPlan(ctx context.Context, ownerID uuid.UUID) (*Plan, error)
	UpsertPlan(ctx context.Context, plan *Plan) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the owner's plan, or ErrNotFound when none has been set up.
func (s *Service) Get(ctx context.Context, ownerID uuid.UUID) (*Plan, error) {
	return s.repo.GetPlan(ctx, ownerID)
}

// Set validates and stores the owner's plan.
func (s *Service) Set(ctx context.Context, plan *Plan) error {
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("invalid school plan: %w", err)
	}

	return s.repo.UpsertPlan(ctx, plan)
}

// SpendFlex deducts a flex spend from the stored balance, clamped at zero.
// Owners without a plan are a no-op: the ledger accepts flex transactions
// even before a plan exists.
func (s *Service) SpendFlex(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) error {
	plan, err := s.repo.GetPlan(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}

		return err
	}

	plan.SpendFlex(amount)

	return s.repo.UpsertPlan(ctx, plan)
}

// UseSwipe consumes one meal swipe, clamped at zero.
func (s *Service) UseSwipe(ctx context.Context, ownerID uuid.UUID) error {
	plan, err := s.repo.GetPlan(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}

		return err
	}

	plan.UseSwipe()

	return s.repo.UpsertPlan(ctx, plan)
}
