// Package insights is the time-windowed aggregation engine: it turns the flat
// transaction ledger into period-bucketed spending and income series,
// flex-balance projections and chart-ready data.
//
// Every function here is pure. Results depend on wall-clock time only through
// the explicit now parameter, so callers must pass a fresh now per
// render/interaction instead of memoizing across calls.
package insights

import "time"

// Horizon selects the reporting window for period-relative queries.
type Horizon string

const (
	Horizon4W Horizon = "4W"
	Horizon3M Horizon = "3M"
	Horizon1Y Horizon = "1Y"
)

// Valid reports whether h is one of the supported horizons.
func (h Horizon) Valid() bool {
	switch h {
	case Horizon4W, Horizon3M, Horizon1Y:
		return true
	}

	return false
}

// PeriodStart maps a horizon to the concrete instant the period begins at.
// 4W is exactly 28 days back; 3M and 1Y use calendar arithmetic with Go's
// date normalization on rollover (e.g. May 31 minus 3 months).
func PeriodStart(h Horizon, now time.Time) time.Time {
	switch h {
	case Horizon4W:
		return now.AddDate(0, 0, -28)
	case Horizon3M:
		return now.AddDate(0, -3, 0)
	case Horizon1Y:
		return now.AddDate(-1, 0, 0)
	}

	return now
}

// PeriodKind selects the phrasing of a period label.
type PeriodKind string

const (
	KindSpending PeriodKind = "spending"
	KindIncome   PeriodKind = "income"
)

// PeriodLabel returns the display label shown next to a period total.
func PeriodLabel(h Horizon, kind PeriodKind) string {
	var span string

	switch h {
	case Horizon4W:
		span = "this month"
	case Horizon3M:
		span = "this quarter"
	case Horizon1Y:
		span = "this year"
	default:
		return ""
	}

	if kind == KindSpending {
		return "spent " + span
	}

	return span
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// monthBounds returns the first and last instant of the calendar month that
// lies offset months before now's month.
func monthBounds(now time.Time, offset int) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month()-time.Month(offset), 1, 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month()-time.Month(offset)+1, 0, 23, 59, 59, 999999999, now.Location())

	return start, end
}

// weekBounds returns the trailing 7-day window ending offset weeks before now:
// the end is now minus 7*offset days at end of day, the start six days earlier
// at start of day.
func weekBounds(now time.Time, offset int) (time.Time, time.Time) {
	end := dayEnd(now.AddDate(0, 0, -7*offset))
	start := dayStart(end.AddDate(0, 0, -6))

	return start, end
}
