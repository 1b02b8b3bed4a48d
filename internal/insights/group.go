package insights

import (
	"fmt"
	"math"
	"time"

	"github.com/mlowther/centsy/internal/ledger"
)

// RelativeDateLabel renders a date relative to now for ledger display:
// Today, Tomorrow, Yesterday, "In N days" / "N days ago" within a week,
// otherwise a short absolute date.
func RelativeDateLabel(date, now time.Time) string {
	diffDays := int(math.Ceil(date.Sub(now).Hours() / 24))

	switch {
	case diffDays == 0:
		return "Today"
	case diffDays == 1:
		return "Tomorrow"
	case diffDays == -1:
		return "Yesterday"
	case diffDays > 0 && diffDays <= 7:
		return fmt.Sprintf("In %d days", diffDays)
	case diffDays < 0 && diffDays >= -7:
		return fmt.Sprintf("%d days ago", -diffDays)
	}

	return date.Format("Jan 2, 2006")
}

// GroupByRelativeDate buckets transactions under their relative-date label,
// preserving input order within each bucket.
func GroupByRelativeDate(txs []*ledger.Transaction, now time.Time) map[string][]*ledger.Transaction {
	grouped := make(map[string][]*ledger.Transaction)

	for _, t := range txs {
		key := RelativeDateLabel(t.Date, now)
		grouped[key] = append(grouped[key], t)
	}

	return grouped
}
