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

func TestPointAt_ExactRecomputation(t *testing.T) {
	periodStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.Add(days(10))

	txs := []*ledger.Transaction{
		spend(periodStart.Add(days(1)), 10, "Food"),
		spend(periodStart.Add(days(4)), 20, "Food"),
		spend(periodStart.Add(days(9)), 40, "Food"),
		earn(periodStart.Add(days(2)), 500), // income never enters the spend curve
	}

	t.Run("MidPeriod", func(t *testing.T) {
		got := insights.PointAt(0.5, periodStart, periodEnd, nil, txs)

		assert.True(t, got.Date.Equal(periodStart.Add(days(5))))
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(30)), "amount = %s", got.Amount)
	})

	t.Run("EndOfPeriod", func(t *testing.T) {
		got := insights.PointAt(1, periodStart, periodEnd, nil, txs)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(70)))
	})

	t.Run("RatioClamped", func(t *testing.T) {
		low := insights.PointAt(-0.4, periodStart, periodEnd, nil, txs)
		high := insights.PointAt(1.7, periodStart, periodEnd, nil, txs)

		assert.True(t, low.Date.Equal(periodStart))
		assert.True(t, high.Date.Equal(periodEnd))
	})

	t.Run("PreferredOverSeriesWhenBothSupplied", func(t *testing.T) {
		series := []insights.SeriesPoint{
			{Date: periodStart, Amount: decimal.NewFromInt(999)},
			{Date: periodEnd, Amount: decimal.NewFromInt(999)},
		}

		got := insights.PointAt(0.5, periodStart, periodEnd, series, txs)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(30)), "exact recomputation must win over the series")
	})
}

func TestPointAt_SeriesFallback(t *testing.T) {
	periodStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.Add(days(3))

	series := []insights.SeriesPoint{
		{Date: periodStart.Add(days(1)), Amount: decimal.NewFromInt(0)},
		{Date: periodStart.Add(days(2)), Amount: decimal.NewFromInt(100)},
		{Date: periodStart.Add(days(3)), Amount: decimal.NewFromInt(200)},
	}

	t.Run("LinearBetweenNeighbors", func(t *testing.T) {
		// index = 0.25 * 2 = 0.5, halfway between points 0 and 1.
		got := insights.PointAt(0.25, periodStart, periodEnd, series, nil)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(50)), "amount = %s", got.Amount)
	})

	t.Run("OnAPoint", func(t *testing.T) {
		got := insights.PointAt(0.5, periodStart, periodEnd, series, nil)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("EmptyEverything", func(t *testing.T) {
		got := insights.PointAt(0.5, periodStart, periodEnd, nil, nil)
		assert.True(t, got.Amount.IsZero())
	})
}

func TestNearestFlexPoint(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	points := []insights.BalancePoint{
		{Date: start, Balance: decimal.NewFromInt(120)},
		{Date: start.Add(days(5)), Balance: decimal.NewFromInt(100)},
		{Date: start.Add(days(10)), Balance: decimal.NewFromInt(60)},
	}

	t.Run("SnapsToNearestByDate", func(t *testing.T) {
		// ratio 0.45 over 10 days is day 4.5, closest to the day-5 point.
		got, ok := insights.NearestFlexPoint(0.45, points)

		require.True(t, ok)
		assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))
		assert.True(t, got.Date.Equal(start.Add(days(5))), "nearest neighbor, never an interpolated date")
	})

	t.Run("Edges", func(t *testing.T) {
		first, ok := insights.NearestFlexPoint(0, points)
		require.True(t, ok)
		assert.True(t, first.Balance.Equal(decimal.NewFromInt(120)))

		last, ok := insights.NearestFlexPoint(1, points)
		require.True(t, ok)
		assert.True(t, last.Balance.Equal(decimal.NewFromInt(60)))
	})

	t.Run("Empty", func(t *testing.T) {
		_, ok := insights.NearestFlexPoint(0.5, nil)
		assert.False(t, ok)
	})
}
