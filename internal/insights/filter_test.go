package insights_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlowther/centsy/internal/insights"
	"github.com/mlowther/centsy/internal/ledger"
)

func TestFilterByPeriod(t *testing.T) {
	start := insights.PeriodStart(insights.Horizon4W, now)

	inside := spend(now.Add(-days(3)), 10, "Food")
	onBoundary := spend(start, 20, "Food")
	outside := spend(start.Add(-time.Second), 30, "Food")

	got := insights.FilterByPeriod([]*ledger.Transaction{inside, onBoundary, outside}, insights.Horizon4W, now)

	require.Len(t, got, 2)
	assert.Contains(t, got, inside)
	assert.Contains(t, got, onBoundary, "period start boundary is inclusive")
}

func TestFilterBetween_InclusiveBounds(t *testing.T) {
	start := now.Add(-days(10))
	end := now

	atStart := spend(start, 1, "Food")
	atEnd := spend(end, 2, "Food")
	before := spend(start.Add(-time.Nanosecond), 3, "Food")
	after := spend(end.Add(time.Nanosecond), 4, "Food")

	got := insights.FilterBetween([]*ledger.Transaction{atStart, atEnd, before, after}, start, end)

	require.Len(t, got, 2)
	assert.Contains(t, got, atStart)
	assert.Contains(t, got, atEnd)
}

func TestPredicateFilters(t *testing.T) {
	food := spend(now, 10, "Food")
	sub := spend(now, 15, ledger.CategorySubscriptions)
	pay := earn(now, 500)
	flex := flexSpend(now, 8)

	review := spend(now, 5, "Food")
	review.NeedsReview = true

	txs := []*ledger.Transaction{food, sub, pay, flex, review}

	assert.Len(t, insights.FilterByType(txs, ledger.TypeSpend), 4)
	assert.Len(t, insights.FilterByType(txs, ledger.TypeEarn), 1)
	assert.Len(t, insights.FilterByCategory(txs, "Food"), 3)
	assert.Equal(t, []*ledger.Transaction{flex}, insights.FilterByPaymentMethod(txs, ledger.PaymentFlex))
	assert.Equal(t, []*ledger.Transaction{review}, insights.FilterNeedsReview(txs))
}

func TestFilters_EmptyInput(t *testing.T) {
	assert.Empty(t, insights.FilterByPeriod(nil, insights.Horizon1Y, now))
	assert.Empty(t, insights.FilterByType(nil, ledger.TypeSpend))
	assert.Empty(t, insights.FilterNeedsReview(nil))
}
