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

func TestFlexBalanceHistory(t *testing.T) {
	termStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("ReconstructsFromCurrentBalance", func(t *testing.T) {
		tx := flexSpend(termStart.Add(days(5)), 20)

		got := insights.FlexBalanceHistory(decimal.NewFromInt(100), termStart, []*ledger.Transaction{tx}, now)

		require.Len(t, got, 3)
		assert.True(t, got[0].Date.Equal(termStart))
		assert.True(t, got[0].Balance.Equal(decimal.NewFromInt(120)))
		assert.True(t, got[1].Date.Equal(tx.Date))
		assert.True(t, got[1].Balance.Equal(decimal.NewFromInt(100)))
		assert.True(t, got[2].Date.Equal(now), "trailing point at now since now is after the last transaction")
		assert.True(t, got[2].Balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("NoFlexTransactionsYieldsSinglePoint", func(t *testing.T) {
		txs := []*ledger.Transaction{
			spend(termStart.Add(days(2)), 50, "Food"), // cash, not flex
			swipeSpend(termStart.Add(days(3))),        // swipes do not touch the balance
		}

		got := insights.FlexBalanceHistory(decimal.NewFromInt(80), termStart, txs, now)

		require.Len(t, got, 1)
		assert.True(t, got[0].Date.Equal(termStart))
		assert.True(t, got[0].Balance.Equal(decimal.NewFromInt(80)))
	})

	t.Run("WalksTransactionsInDateOrder", func(t *testing.T) {
		// Supplied newest first; the curve must still step down chronologically.
		txs := []*ledger.Transaction{
			flexSpend(termStart.Add(days(10)), 30),
			flexSpend(termStart.Add(days(4)), 10),
		}

		got := insights.FlexBalanceHistory(decimal.NewFromInt(60), termStart, txs, now)

		require.Len(t, got, 4)
		assert.True(t, got[0].Balance.Equal(decimal.NewFromInt(100)))
		assert.True(t, got[1].Date.Equal(termStart.Add(days(4))))
		assert.True(t, got[1].Balance.Equal(decimal.NewFromInt(90)))
		assert.True(t, got[2].Balance.Equal(decimal.NewFromInt(60)))
	})

	t.Run("IgnoresTransactionsOutsideTerm", func(t *testing.T) {
		txs := []*ledger.Transaction{
			flexSpend(termStart.Add(-days(1)), 10),
			flexSpend(now.Add(time.Hour), 10),
			flexSpend(termStart.Add(days(1)), 10),
		}

		got := insights.FlexBalanceHistory(decimal.NewFromInt(50), termStart, txs, now)

		require.Len(t, got, 3)
		assert.True(t, got[0].Balance.Equal(decimal.NewFromInt(60)))
	})

	t.Run("ClampsAtZero", func(t *testing.T) {
		txs := []*ledger.Transaction{
			flexSpend(termStart.Add(days(1)), 40),
			flexSpend(termStart.Add(days(2)), 40),
		}

		// Current balance zero: initial reconstructs to 80, then 40, then 0.
		got := insights.FlexBalanceHistory(decimal.Zero, termStart, txs, now)

		for _, p := range got {
			assert.False(t, p.Balance.IsNegative(), "balance at %s must not be negative", p.Date)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		txs := []*ledger.Transaction{
			flexSpend(termStart.Add(days(2)), 12.75),
			flexSpend(termStart.Add(days(9)), 7.25),
			flexSpend(termStart.Add(days(20)), 31),
		}
		current := decimal.NewFromFloat(148.50)

		got := insights.FlexBalanceHistory(current, termStart, txs, now)

		totalFlex := decimal.NewFromFloat(12.75 + 7.25 + 31)
		assert.True(t, got[0].Balance.Sub(totalFlex).Equal(current),
			"first point minus flex spend must equal the current balance")
	})
}

func TestFlexTrendLine(t *testing.T) {
	start := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	t.Run("ProjectsDailyUntilZero", func(t *testing.T) {
		got := insights.FlexTrendLine(decimal.NewFromInt(100), start, decimal.NewFromInt(30))

		// 100, 70, 40, 10, 0 — terminates at the first zero point.
		require.Len(t, got, 5)
		assert.True(t, got[0].Balance.Equal(decimal.NewFromInt(100)))
		assert.True(t, got[3].Balance.Equal(decimal.NewFromInt(10)))
		assert.True(t, got[4].Balance.IsZero())
		assert.True(t, got[4].Date.Equal(start.AddDate(0, 0, 4)))

		for _, p := range got {
			assert.False(t, p.Balance.IsNegative())
		}
	})

	t.Run("ExactDepletion", func(t *testing.T) {
		got := insights.FlexTrendLine(decimal.NewFromInt(90), start, decimal.NewFromInt(30))

		// 90, 60, 30, 0
		require.Len(t, got, 4)
		assert.True(t, got[3].Balance.IsZero())
	})

	t.Run("NoBurnRate", func(t *testing.T) {
		assert.Empty(t, insights.FlexTrendLine(decimal.NewFromInt(100), start, decimal.Zero))
		assert.Empty(t, insights.FlexTrendLine(decimal.NewFromInt(100), start, decimal.NewFromInt(-5)))
	})

	t.Run("NoBalance", func(t *testing.T) {
		assert.Empty(t, insights.FlexTrendLine(decimal.Zero, start, decimal.NewFromInt(10)))
		assert.Empty(t, insights.FlexTrendLine(decimal.NewFromInt(-20), start, decimal.NewFromInt(10)))
	})
}

func TestBurnRate(t *testing.T) {
	termStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	termEnd := time.Date(2026, 12, 19, 0, 0, 0, 0, time.UTC)

	t.Run("BalanceOverDaysRemaining", func(t *testing.T) {
		at := termStart.Add(days(40)) // 100 of 140 term days remain

		got := insights.BurnRate(decimal.NewFromInt(500), termStart, termEnd, at)

		assert.True(t, got.Equal(decimal.NewFromInt(5)), "rate = %s", got)
	})

	t.Run("TermOverIsZero", func(t *testing.T) {
		got := insights.BurnRate(decimal.NewFromInt(500), termStart, termEnd, termEnd.Add(days(1)))
		assert.True(t, got.IsZero())
	})

	t.Run("ZeroDurationTermIsZero", func(t *testing.T) {
		got := insights.BurnRate(decimal.NewFromInt(500), termStart, termStart, termStart)
		assert.True(t, got.IsZero())
	})
}
