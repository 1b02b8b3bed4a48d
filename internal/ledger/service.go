package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	MarkReviewed(ctx context.Context, ownerID, id uuid.UUID) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error
	CreateTransactions(ctx context.Context, txs []*Transaction) error
}

// SchoolPlans is the slice of the school-plan domain the ledger needs:
// flex and swipe spends deplete the owner's plan when they are recorded.
type SchoolPlans interface {
	SpendFlex(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) error
	UseSwipe(ctx context.Context, ownerID uuid.UUID) error
}

type Service struct {
	repo  Repository
	plans SchoolPlans
}

func NewService(repo Repository, plans SchoolPlans) *Service {
	return &Service{repo: repo, plans: plans}
}

type CreateParams struct {
	Date          time.Time
	Merchant      string
	Category      string
	Amount        decimal.Decimal
	Type          Type
	PaymentMethod PaymentMethod
	NeedsReview   bool
}

type ListFilter struct {
	OwnerID       uuid.UUID
	Type          *Type
	Category      *string
	PaymentMethod *PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
	NeedsReview   *bool
}

// Create records a transaction and applies school-plan side effects for flex
// and swipe spends. Swipe transactions always carry a zero amount; the meal
// swipe counter is the unit being spent.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Transaction, error) {
	amount := params.Amount
	if params.PaymentMethod == PaymentSwipe {
		amount = decimal.Zero
	}

	if amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative: %s", params.Amount)
	}

	tx := &Transaction{
		OwnerID:       ownerID,
		Date:          params.Date,
		Merchant:      params.Merchant,
		Category:      params.Category,
		Amount:        amount,
		Type:          params.Type,
		PaymentMethod: params.PaymentMethod,
		NeedsReview:   params.NeedsReview,
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	if tx.IsSpend() {
		switch tx.PaymentMethod {
		case PaymentFlex:
			if err := s.plans.SpendFlex(ctx, ownerID, tx.Amount); err != nil {
				return nil, fmt.Errorf("depleting flex balance: %w", err)
			}
		case PaymentSwipe:
			if err := s.plans.UseSwipe(ctx, ownerID); err != nil {
				return nil, fmt.Errorf("depleting meal swipes: %w", err)
			}
		}
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

type UpdateParams struct {
	Merchant      *string
	Category      *string
	Amount        *decimal.Decimal
	PaymentMethod *PaymentMethod
	Date          *time.Time
}

// Update edits a transaction in place. It does not replay school-plan side
// effects; those apply at creation time only.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if params.Merchant != nil {
		tx.Merchant = *params.Merchant
	}

	if params.Category != nil {
		tx.Category = *params.Category
	}

	if params.Amount != nil {
		if params.Amount.IsNegative() {
			return nil, fmt.Errorf("amount must not be negative: %s", params.Amount)
		}

		tx.Amount = *params.Amount
	}

	if params.PaymentMethod != nil {
		tx.PaymentMethod = *params.PaymentMethod
		if tx.PaymentMethod == PaymentSwipe {
			tx.Amount = decimal.Zero
		}
	}

	if params.Date != nil {
		tx.Date = *params.Date
	}

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("updating transaction: %w", err)
	}

	return tx, nil
}

// MarkReviewed clears the needs-review flag set on auto-created transactions.
func (s *Service) MarkReviewed(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.MarkReviewed(ctx, ownerID, id)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, ownerID, id)
}

// CreateBatch records imported transactions in one call. School-plan side
// effects are not applied to imported rows; imports describe history, not
// new card activity.
func (s *Service) CreateBatch(ctx context.Context, ownerID uuid.UUID, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]*Transaction, len(params))

	for i, p := range params {
		amount := p.Amount
		if p.PaymentMethod == PaymentSwipe {
			amount = decimal.Zero
		}

		if amount.IsNegative() {
			return nil, fmt.Errorf("row %d: amount must not be negative: %s", i+1, p.Amount)
		}

		txs[i] = &Transaction{
			OwnerID:       ownerID,
			Date:          p.Date,
			Merchant:      p.Merchant,
			Category:      p.Category,
			Amount:        amount,
			Type:          p.Type,
			PaymentMethod: p.PaymentMethod,
			NeedsReview:   p.NeedsReview,
		}
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("creating transactions: %w", err)
	}

	return txs, nil
}
