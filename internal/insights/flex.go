package insights

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/ledger"
)

// BalancePoint is one point of the flex-dollar balance curve.
type BalancePoint struct {
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// FlexBalanceHistory reconstructs the flex-dollar balance curve between
// termStart and now from the current balance and the transaction history.
//
// The balance at termStart is the current balance plus every flex spend since
// then; the curve then steps down at each flex transaction in date order.
// Swipe transactions never touch the flex balance and are ignored. The series
// opens with the termStart point and closes with a point at now holding the
// final balance when now is strictly after the last transaction's date; with
// no flex transactions at all the series is just the termStart point.
// Emitted balances are clamped at zero.
func FlexBalanceHistory(currentBalance decimal.Decimal, termStart time.Time, txs []*ledger.Transaction, now time.Time) []BalancePoint {
	var flexTxs []*ledger.Transaction

	for _, t := range txs {
		if t.PaymentMethod != ledger.PaymentFlex || t.Type != ledger.TypeSpend {
			continue
		}

		if t.Date.Before(termStart) || t.Date.After(now) {
			continue
		}

		flexTxs = append(flexTxs, t)
	}

	sort.SliceStable(flexTxs, func(i, j int) bool {
		return flexTxs[i].Date.Before(flexTxs[j].Date)
	})

	running := currentBalance.Add(sumAmounts(flexTxs))

	points := []BalancePoint{{Date: termStart, Balance: clampZero(running)}}

	for _, t := range flexTxs {
		running = running.Sub(t.Amount)
		points = append(points, BalancePoint{Date: t.Date, Balance: clampZero(running)})
	}

	if len(flexTxs) > 0 && now.After(flexTxs[len(flexTxs)-1].Date) {
		points = append(points, BalancePoint{Date: now, Balance: clampZero(running)})
	}

	return points
}

// FlexTrendLine projects the balance forward one point per day at the average
// daily burn, ending at the first day the balance hits zero (that zero point
// included). An empty slice means there is nothing to project: no balance
// left or no burn.
func FlexTrendLine(currentBalance decimal.Decimal, currentDate time.Time, avgDailyBurn decimal.Decimal) []BalancePoint {
	if avgDailyBurn.Sign() <= 0 || currentBalance.Sign() <= 0 {
		return nil
	}

	daysUntilZero := currentBalance.Div(avgDailyBurn).Ceil().IntPart()

	var points []BalancePoint

	for i := int64(0); i <= daysUntilZero; i++ {
		remaining := currentBalance.Sub(avgDailyBurn.Mul(decimal.NewFromInt(i)))
		points = append(points, BalancePoint{
			Date:    currentDate.AddDate(0, 0, int(i)),
			Balance: clampZero(remaining),
		})

		if remaining.Sign() <= 0 {
			break
		}
	}

	return points
}

// BurnRate is the spend per day needed to exactly exhaust the balance by
// termEnd. Days are whole elapsed days; when the term is over (or never
// started) the rate is undefined and reported as zero.
func BurnRate(balance decimal.Decimal, termStart, termEnd, now time.Time) decimal.Decimal {
	daysElapsed := wholeDays(termStart, now)
	totalDays := wholeDays(termStart, termEnd)

	daysRemaining := totalDays - daysElapsed
	if daysRemaining <= 0 {
		return decimal.Zero
	}

	return balance.Div(decimal.NewFromInt(daysRemaining))
}

func wholeDays(from, to time.Time) int64 {
	return int64(to.Sub(from).Hours() / 24)
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}

	return d
}
