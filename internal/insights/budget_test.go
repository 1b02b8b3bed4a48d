package insights_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mlowther/centsy/internal/budget"
	"github.com/mlowther/centsy/internal/insights"
)

func bgt(monthly, spent float64) budget.Budget {
	return budget.Budget{
		Category:    "Food",
		Monthly:     decimal.NewFromFloat(monthly),
		SpentToDate: decimal.NewFromFloat(spent),
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, insights.BudgetGood, insights.StatusOf(bgt(100, 50)))
	assert.Equal(t, insights.BudgetGood, insights.StatusOf(bgt(100, 80)), "80% is still good")
	assert.Equal(t, insights.BudgetWarning, insights.StatusOf(bgt(100, 81)))
	assert.Equal(t, insights.BudgetWarning, insights.StatusOf(bgt(100, 100)), "100% is a warning, not over")
	assert.Equal(t, insights.BudgetOver, insights.StatusOf(bgt(100, 100.01)))
	assert.Equal(t, insights.BudgetOver, insights.StatusOf(bgt(0, 1)), "any spend against a zero ceiling is over")
	assert.Equal(t, insights.BudgetGood, insights.StatusOf(bgt(0, 0)))
}

func TestPercentUsed(t *testing.T) {
	assert.True(t, insights.PercentUsed(bgt(200, 50)).Equal(decimal.NewFromInt(25)))
	assert.True(t, insights.PercentUsed(bgt(100, 250)).Equal(decimal.NewFromInt(100)), "capped at 100")
	assert.True(t, insights.PercentUsed(bgt(0, 0)).IsZero())
	assert.True(t, insights.PercentUsed(bgt(0, 10)).Equal(decimal.NewFromInt(100)))
}

func TestBudgetTotals(t *testing.T) {
	budgets := []budget.Budget{bgt(100, 120), bgt(200, 50), bgt(300, 310)}

	assert.True(t, insights.TotalBudgeted(budgets).Equal(decimal.NewFromInt(600)))
	assert.True(t, insights.TotalSpent(budgets).Equal(decimal.NewFromInt(480)))
	assert.True(t, insights.TotalOverBudget(budgets).Equal(decimal.NewFromInt(30)), "only overshoot counts")
}
