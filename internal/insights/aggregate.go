package insights

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/ledger"
)

// SeriesPoint is one point of a chart series.
type SeriesPoint struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// PeriodSpending sums spend amounts over the horizon ending at now.
func PeriodSpending(txs []*ledger.Transaction, h Horizon, now time.Time) decimal.Decimal {
	return sumAmounts(FilterByType(FilterByPeriod(txs, h, now), ledger.TypeSpend))
}

// PeriodIncome sums earn amounts over the horizon ending at now.
func PeriodIncome(txs []*ledger.Transaction, h Horizon, now time.Time) decimal.Decimal {
	return sumAmounts(FilterByType(FilterByPeriod(txs, h, now), ledger.TypeEarn))
}

// SpendingByCategory groups spend amounts by category over the horizon.
func SpendingByCategory(txs []*ledger.Transaction, h Horizon, now time.Time) map[string]decimal.Decimal {
	byCategory := make(map[string]decimal.Decimal)

	for _, t := range FilterByType(FilterByPeriod(txs, h, now), ledger.TypeSpend) {
		byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
	}

	return byCategory
}

// PeriodChartData builds the cumulative spending curve for the horizon:
// exactly 4 trailing-week buckets for 4W, 3 calendar-month buckets for 3M and
// 12 for 1Y, oldest first. Each point carries the cumulative spend from the
// period start through that bucket's end, so empty buckets repeat the prior
// value instead of being omitted.
func PeriodChartData(txs []*ledger.Transaction, h Horizon, now time.Time) []SeriesPoint {
	filtered := FilterByPeriod(FilterByType(txs, ledger.TypeSpend), h, now)

	var data []SeriesPoint

	cumulative := decimal.Zero

	switch h {
	case Horizon4W:
		for i := 3; i >= 0; i-- {
			start, end := weekBounds(now, i)
			cumulative = cumulative.Add(sumAmounts(FilterBetween(filtered, start, end)))
			data = append(data, SeriesPoint{Date: end, Amount: cumulative})
		}
	case Horizon3M, Horizon1Y:
		months := 3
		if h == Horizon1Y {
			months = 12
		}

		for i := months - 1; i >= 0; i-- {
			start, end := monthBounds(now, i)
			cumulative = cumulative.Add(sumAmounts(FilterBetween(filtered, start, end)))
			data = append(data, SeriesPoint{Date: end, Amount: cumulative})
		}
	}

	return data
}

// NetIncomeBar is one bar of the net-income chart: earn minus spend within
// the bucket, positive when the owner came out ahead.
type NetIncomeBar struct {
	Period    string          `json:"period"`
	NetIncome decimal.Decimal `json:"netIncome"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
}

// NetIncomeBars builds the per-bucket net income series: 4 weekly bars for
// 4W, 4 monthly bars for 3M (current month plus the three before it; the
// extra month relative to PeriodChartData is intentional, observed product
// behavior) and 12 monthly bars for 1Y. Weekly bars are labeled "M/D - M/D",
// monthly bars with the three-letter month name.
func NetIncomeBars(txs []*ledger.Transaction, h Horizon, now time.Time) []NetIncomeBar {
	var data []NetIncomeBar

	switch h {
	case Horizon4W:
		for i := 3; i >= 0; i-- {
			start, end := weekBounds(now, i)
			data = append(data, NetIncomeBar{
				Period:    fmt.Sprintf("%s - %s", shortDate(start), shortDate(end)),
				NetIncome: netIncome(FilterBetween(txs, start, end)),
				StartDate: start,
				EndDate:   end,
			})
		}
	case Horizon3M, Horizon1Y:
		months := 4
		if h == Horizon1Y {
			months = 12
		}

		for i := months - 1; i >= 0; i-- {
			start, end := monthBounds(now, i)
			data = append(data, NetIncomeBar{
				Period:    start.Format("Jan"),
				NetIncome: netIncome(FilterBetween(txs, start, end)),
				StartDate: start,
				EndDate:   end,
			})
		}
	}

	return data
}

func sumAmounts(txs []*ledger.Transaction) decimal.Decimal {
	sum := decimal.Zero

	for _, t := range txs {
		sum = sum.Add(t.Amount)
	}

	return sum
}

func netIncome(txs []*ledger.Transaction) decimal.Decimal {
	income := sumAmounts(FilterByType(txs, ledger.TypeEarn))
	spending := sumAmounts(FilterByType(txs, ledger.TypeSpend))

	return income.Sub(spending)
}

// shortDate formats a date as M/D without zero padding.
func shortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}
