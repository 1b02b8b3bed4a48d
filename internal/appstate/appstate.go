// Package appstate holds a per-owner snapshot of the application's data and
// derived entities. It replaces the usual pattern of mutating shared state
// inside persistence callbacks: every mutation goes through the domain
// services first, then the whole snapshot is rebuilt from the repositories
// and swapped in atomically. The aggregation functions in insights stay pure
// and are re-run against the fresh snapshot.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/budget"
	"github.com/mlowther/centsy/internal/income"
	"github.com/mlowther/centsy/internal/insights"
	"github.com/mlowther/centsy/internal/ledger"
	"github.com/mlowther/centsy/internal/school"
)

type LedgerService interface {
	List(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error)
	Create(ctx context.Context, ownerID uuid.UUID, params ledger.CreateParams) (*ledger.Transaction, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, params ledger.UpdateParams) (*ledger.Transaction, error)
	MarkReviewed(ctx context.Context, ownerID, id uuid.UUID) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type BudgetService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]budget.Budget, error)
	RecordSpend(ctx context.Context, ownerID uuid.UUID, category string, amount decimal.Decimal) error
}

type IncomeService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]*income.Source, error)
}

type SchoolService interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*school.Plan, error)
	Set(ctx context.Context, plan *school.Plan) error
}

// Snapshot is an immutable view of one owner's data plus the entities
// derived from it. Derived fields are recomputed on every refresh, never
// stored.
type Snapshot struct {
	Transactions  []*ledger.Transaction
	Budgets       []budget.Budget
	IncomeSources []*income.Source
	Plan          school.Plan
	Subscriptions []insights.Subscription
	CashFlow      insights.CashFlow
}

// Controller coordinates mutations and snapshot refreshes for one owner.
type Controller struct {
	ownerID uuid.UUID
	ledger  LedgerService
	budgets BudgetService
	incomes IncomeService
	plans   SchoolService

	mu   sync.RWMutex
	snap Snapshot
}

func New(ownerID uuid.UUID, ledgerSvc LedgerService, budgetSvc BudgetService, incomeSvc IncomeService, schoolSvc SchoolService) *Controller {
	return &Controller{
		ownerID: ownerID,
		ledger:  ledgerSvc,
		budgets: budgetSvc,
		incomes: incomeSvc,
		plans:   schoolSvc,
	}
}

// Snapshot returns the current snapshot. The contents must be treated as
// read-only.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.snap
}

// Refresh reloads everything from the repositories, recomputes the derived
// entities and replaces the held snapshot.
func (c *Controller) Refresh(ctx context.Context) error {
	txs, err := c.ledger.List(ctx, ledger.ListFilter{OwnerID: c.ownerID})
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}

	budgets, err := c.budgets.List(ctx, c.ownerID)
	if err != nil {
		return fmt.Errorf("loading budgets: %w", err)
	}

	sources, err := c.incomes.List(ctx, c.ownerID)
	if err != nil {
		return fmt.Errorf("loading income sources: %w", err)
	}

	plan, err := c.plans.Get(ctx, c.ownerID)
	if err != nil {
		if !errors.Is(err, school.ErrNotFound) {
			return fmt.Errorf("loading school plan: %w", err)
		}

		plan = &school.Plan{OwnerID: c.ownerID}
	}

	snap := Snapshot{
		Transactions:  txs,
		Budgets:       budgets,
		IncomeSources: sources,
		Plan:          *plan,
		Subscriptions: insights.DeriveSubscriptions(txs),
		CashFlow:      insights.CashFlowSummary(txs),
	}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	return nil
}

// AddTransaction records a transaction (school-plan depletion happens inside
// the ledger service), rolls spends into the category budget, and refreshes.
func (c *Controller) AddTransaction(ctx context.Context, params ledger.CreateParams) (*ledger.Transaction, error) {
	tx, err := c.ledger.Create(ctx, c.ownerID, params)
	if err != nil {
		return nil, err
	}

	if tx.IsSpend() && !tx.Amount.IsZero() {
		if err := c.budgets.RecordSpend(ctx, c.ownerID, tx.Category, tx.Amount); err != nil && !errors.Is(err, budget.ErrNotFound) {
			return nil, fmt.Errorf("recording spend against budget: %w", err)
		}
	}

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}

	return tx, nil
}

// UpdateTransaction edits a transaction and refreshes.
func (c *Controller) UpdateTransaction(ctx context.Context, id uuid.UUID, params ledger.UpdateParams) (*ledger.Transaction, error) {
	tx, err := c.ledger.Update(ctx, c.ownerID, id, params)
	if err != nil {
		return nil, err
	}

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}

	return tx, nil
}

// MarkReviewed clears a transaction's review flag and refreshes.
func (c *Controller) MarkReviewed(ctx context.Context, id uuid.UUID) error {
	if err := c.ledger.MarkReviewed(ctx, c.ownerID, id); err != nil {
		return err
	}

	return c.Refresh(ctx)
}

// DeleteTransaction removes a transaction from the ledger and refreshes; the
// transaction disappears from all future aggregations.
func (c *Controller) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if err := c.ledger.Delete(ctx, c.ownerID, id); err != nil {
		return err
	}

	return c.Refresh(ctx)
}

// SetPlan validates and stores the school plan, then refreshes.
func (c *Controller) SetPlan(ctx context.Context, plan school.Plan) error {
	plan.OwnerID = c.ownerID

	if err := c.plans.Set(ctx, &plan); err != nil {
		return err
	}

	return c.Refresh(ctx)
}
