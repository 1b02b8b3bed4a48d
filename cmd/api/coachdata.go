package main

import (
	"context"

	"github.com/google/uuid"

	"github.com/mlowther/centsy/internal/income"
	"github.com/mlowther/centsy/internal/ledger"
	"github.com/mlowther/centsy/internal/school"
)

// coachData adapts the domain services to the coach's DataProvider.
type coachData struct {
	ledger *ledger.Service
	income *income.Service
	school *school.Service
}

func (d coachData) Transactions(ctx context.Context, ownerID uuid.UUID) ([]*ledger.Transaction, error) {
	return d.ledger.List(ctx, ledger.ListFilter{OwnerID: ownerID})
}

func (d coachData) IncomeSources(ctx context.Context, ownerID uuid.UUID) ([]*income.Source, error) {
	return d.income.List(ctx, ownerID)
}

func (d coachData) SchoolPlan(ctx context.Context, ownerID uuid.UUID) (*school.Plan, error) {
	return d.school.Get(ctx, ownerID)
}
