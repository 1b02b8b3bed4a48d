package insights

import (
	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/budget"
)

// BudgetStatus classifies how a category is tracking against its ceiling.
type BudgetStatus string

const (
	BudgetOver    BudgetStatus = "over"
	BudgetWarning BudgetStatus = "warning"
	BudgetGood    BudgetStatus = "good"
)

var hundred = decimal.NewFromInt(100)

// StatusOf reports over when spending exceeds the ceiling and warning past
// 80% of it. A zero ceiling with any spending counts as over.
func StatusOf(b budget.Budget) BudgetStatus {
	if b.Monthly.IsZero() {
		if b.SpentToDate.IsPositive() {
			return BudgetOver
		}

		return BudgetGood
	}

	percent := b.SpentToDate.Div(b.Monthly).Mul(hundred)

	switch {
	case percent.GreaterThan(hundred):
		return BudgetOver
	case percent.GreaterThan(decimal.NewFromInt(80)):
		return BudgetWarning
	default:
		return BudgetGood
	}
}

// PercentUsed is the share of the ceiling spent so far, capped at 100.
func PercentUsed(b budget.Budget) decimal.Decimal {
	if b.Monthly.IsZero() {
		if b.SpentToDate.IsPositive() {
			return hundred
		}

		return decimal.Zero
	}

	percent := b.SpentToDate.Div(b.Monthly).Mul(hundred)
	if percent.GreaterThan(hundred) {
		return hundred
	}

	return percent
}

// TotalBudgeted sums the monthly ceilings.
func TotalBudgeted(budgets []budget.Budget) decimal.Decimal {
	sum := decimal.Zero

	for _, b := range budgets {
		sum = sum.Add(b.Monthly)
	}

	return sum
}

// TotalSpent sums the spent-to-date totals.
func TotalSpent(budgets []budget.Budget) decimal.Decimal {
	sum := decimal.Zero

	for _, b := range budgets {
		sum = sum.Add(b.SpentToDate)
	}

	return sum
}

// TotalOverBudget sums only the overshoot of categories past their ceiling.
func TotalOverBudget(budgets []budget.Budget) decimal.Decimal {
	sum := decimal.Zero

	for _, b := range budgets {
		if over := b.SpentToDate.Sub(b.Monthly); over.IsPositive() {
			sum = sum.Add(over)
		}
	}

	return sum
}
