package insights_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlowther/centsy/internal/insights"
	"github.com/mlowther/centsy/internal/ledger"
)

func TestPeriodTotals(t *testing.T) {
	txs := []*ledger.Transaction{
		spend(now, 50, "Food"),
		earn(now.Add(-days(1)), 1000),
	}

	assert.True(t, insights.PeriodSpending(txs, insights.Horizon4W, now).Equal(decimal.NewFromInt(50)))
	assert.True(t, insights.PeriodIncome(txs, insights.Horizon4W, now).Equal(decimal.NewFromInt(1000)))
}

func TestSpendingByCategory(t *testing.T) {
	txs := []*ledger.Transaction{
		spend(now, 10, "Food"),
		spend(now.Add(-days(2)), 5, "Food"),
		spend(now.Add(-days(3)), 20, "Transport"),
		earn(now, 100),
		spend(now.AddDate(0, 0, -40), 99, "Food"), // outside 4W
	}

	got := insights.SpendingByCategory(txs, insights.Horizon4W, now)

	require.Len(t, got, 2)
	assert.True(t, got["Food"].Equal(decimal.NewFromInt(15)))
	assert.True(t, got["Transport"].Equal(decimal.NewFromInt(20)))
}

func TestPeriodChartData_BucketCounts(t *testing.T) {
	txs := []*ledger.Transaction{spend(now, 10, "Food")}

	assert.Len(t, insights.PeriodChartData(txs, insights.Horizon4W, now), 4)
	assert.Len(t, insights.PeriodChartData(txs, insights.Horizon3M, now), 3)
	assert.Len(t, insights.PeriodChartData(txs, insights.Horizon1Y, now), 12)
}

func TestPeriodChartData_CumulativeAndGapFilling(t *testing.T) {
	// Spends in the oldest and newest week only; the two middle buckets must
	// repeat the prior cumulative value instead of dropping to zero.
	txs := []*ledger.Transaction{
		spend(now.Add(-days(22)), 40, "Food"),
		spend(now.Add(-days(1)), 10, "Food"),
	}

	got := insights.PeriodChartData(txs, insights.Horizon4W, now)
	require.Len(t, got, 4)

	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(40)))
	assert.True(t, got[1].Amount.Equal(decimal.NewFromInt(40)))
	assert.True(t, got[2].Amount.Equal(decimal.NewFromInt(40)))
	assert.True(t, got[3].Amount.Equal(decimal.NewFromInt(50)))

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Amount.LessThan(got[i-1].Amount), "cumulative series must be non-decreasing")
		assert.True(t, got[i].Date.After(got[i-1].Date), "points must be oldest first")
	}
}

func TestPeriodChartData_MonthlyBuckets(t *testing.T) {
	// now is Aug 28; 3M buckets are June, July, August.
	txs := []*ledger.Transaction{
		spend(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), 100, "Food"),
		spend(time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), 25, "Food"),
	}

	got := insights.PeriodChartData(txs, insights.Horizon3M, now)
	require.Len(t, got, 3)

	assert.Equal(t, time.June, got[0].Date.Month())
	assert.Equal(t, time.August, got[2].Date.Month())
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, got[1].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, got[2].Amount.Equal(decimal.NewFromInt(125)))
}

func TestPeriodChartData_EmptyLedger(t *testing.T) {
	got := insights.PeriodChartData(nil, insights.Horizon4W, now)

	require.Len(t, got, 4)

	for _, p := range got {
		assert.True(t, p.Amount.IsZero())
	}
}

func TestNetIncomeBars_BucketCounts(t *testing.T) {
	txs := []*ledger.Transaction{spend(now, 10, "Food")}

	assert.Len(t, insights.NetIncomeBars(txs, insights.Horizon4W, now), 4)
	// 3M intentionally produces four monthly bars, one more than the
	// cumulative series' three.
	assert.Len(t, insights.NetIncomeBars(txs, insights.Horizon3M, now), 4)
	assert.Len(t, insights.NetIncomeBars(txs, insights.Horizon1Y, now), 12)
}

func TestNetIncomeBars_ValuesAndLabels(t *testing.T) {
	txs := []*ledger.Transaction{
		earn(now.Add(-days(1)), 200),
		spend(now.Add(-days(2)), 50, "Food"),
		spend(now.Add(-days(8)), 30, "Food"), // previous week
	}

	got := insights.NetIncomeBars(txs, insights.Horizon4W, now)
	require.Len(t, got, 4)

	// Current week: 200 earned - 50 spent.
	assert.True(t, got[3].NetIncome.Equal(decimal.NewFromInt(150)))
	// Previous week: spend only, negative bar.
	assert.True(t, got[2].NetIncome.Equal(decimal.NewFromInt(-30)))
	// Empty weeks are zero, not omitted.
	assert.True(t, got[0].NetIncome.IsZero())

	// now = Aug 28 2026; the current weekly bucket runs Aug 22 - Aug 28.
	assert.Equal(t, "8/22 - 8/28", got[3].Period)
}

func TestNetIncomeBars_MonthLabels(t *testing.T) {
	got := insights.NetIncomeBars(nil, insights.Horizon3M, now)

	require.Len(t, got, 4)
	assert.Equal(t, "May", got[0].Period)
	assert.Equal(t, "Jun", got[1].Period)
	assert.Equal(t, "Jul", got[2].Period)
	assert.Equal(t, "Aug", got[3].Period)
}

func TestAggregates_Deterministic(t *testing.T) {
	txs := []*ledger.Transaction{
		spend(now.Add(-days(3)), 12.34, "Food"),
		earn(now.Add(-days(10)), 500),
		spend(now.Add(-days(40)), 9, "Transport"),
	}

	for _, h := range []insights.Horizon{insights.Horizon4W, insights.Horizon3M, insights.Horizon1Y} {
		assert.Equal(t, insights.PeriodChartData(txs, h, now), insights.PeriodChartData(txs, h, now))
		assert.Equal(t, insights.NetIncomeBars(txs, h, now), insights.NetIncomeBars(txs, h, now))
		assert.True(t, insights.PeriodSpending(txs, h, now).Equal(insights.PeriodSpending(txs, h, now)))
	}
}
