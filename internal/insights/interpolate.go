package insights

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/ledger"
)

// PointAt resolves the point under a chart scrub position. ratio is the
// fractional horizontal position over [periodStart, periodEnd], clamped to
// [0, 1].
//
// When the raw transaction list is available the value is recomputed exactly:
// the cumulative spend from periodStart through the interpolated date. Only
// without transactions does it fall back to linear interpolation between the
// two nearest precomputed series points. Exact recomputation is preferred
// because the cumulative curve between bucket points is not linear.
func PointAt(ratio float64, periodStart, periodEnd time.Time, series []SeriesPoint, txs []*ledger.Transaction) SeriesPoint {
	ratio = clampRatio(ratio)

	duration := periodEnd.Sub(periodStart)
	date := periodStart.Add(time.Duration(ratio * float64(duration)))

	if len(txs) > 0 {
		spent := sumAmounts(FilterByType(FilterBetween(txs, periodStart, date), ledger.TypeSpend))
		return SeriesPoint{Date: date, Amount: spent}
	}

	if len(series) == 0 {
		return SeriesPoint{Date: date, Amount: decimal.Zero}
	}

	index := ratio * float64(len(series)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if upper > len(series)-1 {
		upper = len(series) - 1
	}

	if lower == upper {
		return SeriesPoint{Date: date, Amount: series[lower].Amount}
	}

	frac := decimal.NewFromFloat(index - float64(lower))
	amount := series[lower].Amount.Add(series[upper].Amount.Sub(series[lower].Amount).Mul(frac))

	return SeriesPoint{Date: date, Amount: amount}
}

// NearestFlexPoint resolves a scrub position on the flex-balance chart to the
// historical point closest in time. The flex balance is a step function
// between discrete transactions, so the nearest recorded point is the right
// answer rather than an interpolated value. ok is false for an empty series.
func NearestFlexPoint(ratio float64, points []BalancePoint) (BalancePoint, bool) {
	if len(points) == 0 {
		return BalancePoint{}, false
	}

	ratio = clampRatio(ratio)

	first := points[0].Date
	span := points[len(points)-1].Date.Sub(first)
	target := first.Add(time.Duration(ratio * float64(span)))

	nearest := points[0]
	nearestDist := absDuration(points[0].Date.Sub(target))

	for _, p := range points[1:] {
		if d := absDuration(p.Date.Sub(target)); d < nearestDist {
			nearest = p
			nearestDist = d
		}
	}

	return nearest, true
}

func clampRatio(r float64) float64 {
	return math.Max(0, math.Min(1, r))
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}

	return d
}
