package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Upsert(ctx context.Context, ownerID uuid.UUID, b Budget) error
	Get(ctx context.Context, ownerID uuid.UUID, category string) (*Budget, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Budget, error)
	AddSpent(ctx context.Context, ownerID uuid.UUID, category string, amount decimal.Decimal) error
	Delete(ctx context.Context, ownerID uuid.UUID, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Set creates or replaces the budget for a category. Upserting by category
// key keeps the one-budget-per-category invariant.
func (s *Service) Set(ctx context.Context, ownerID uuid.UUID, b Budget) error {
	if b.Category == "" {
		return fmt.Errorf("category is required")
	}

	if b.Monthly.IsNegative() {
		return fmt.Errorf("monthly budget must not be negative: %s", b.Monthly)
	}

	return s.repo.Upsert(ctx, ownerID, b)
}

func (s *Service) Get(ctx context.Context, ownerID uuid.UUID, category string) (*Budget, error) {
	return s.repo.Get(ctx, ownerID, category)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Budget, error) {
	return s.repo.List(ctx, ownerID)
}

// RecordSpend rolls a new spend into the category's spent-to-date total.
func (s *Service) RecordSpend(ctx context.Context, ownerID uuid.UUID, category string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative: %s", amount)
	}

	return s.repo.AddSpent(ctx, ownerID, category, amount)
}

func (s *Service) Delete(ctx context.Context, ownerID uuid.UUID, category string) error {
	return s.repo.Delete(ctx, ownerID, category)
}
