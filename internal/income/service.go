package income

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateSource(ctx context.Context, src *Source) error
	ListSources(ctx context.Context, ownerID uuid.UUID) ([]*Source, error)
	UpdateSource(ctx context.Context, src *Source) error
	DeleteSource(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name         string
	Amount       decimal.Decimal
	Frequency    Frequency
	LastReceived time.Time
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Source, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if !params.Frequency.Valid() {
		return nil, fmt.Errorf("invalid frequency: %q", params.Frequency)
	}

	if params.Amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative: %s", params.Amount)
	}

	src := &Source{
		OwnerID:      ownerID,
		Name:         params.Name,
		Amount:       params.Amount,
		Frequency:    params.Frequency,
		LastReceived: params.LastReceived,
	}

	if err := s.repo.CreateSource(ctx, src); err != nil {
		return nil, fmt.Errorf("creating income source: %w", err)
	}

	return src, nil
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Source, error) {
	return s.repo.ListSources(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, src *Source) error {
	if !src.Frequency.Valid() {
		return fmt.Errorf("invalid frequency: %q", src.Frequency)
	}

	return s.repo.UpdateSource(ctx, src)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteSource(ctx, ownerID, id)
}
