package insights

import (
	"time"

	"github.com/mlowther/centsy/internal/ledger"
)

// FilterByPeriod returns the transactions dated at or after the start of the
// horizon relative to now. The result depends on now, so re-evaluate per
// invocation rather than caching.
func FilterByPeriod(txs []*ledger.Transaction, h Horizon, now time.Time) []*ledger.Transaction {
	start := PeriodStart(h, now)

	var out []*ledger.Transaction

	for _, t := range txs {
		if !t.Date.Before(start) {
			out = append(out, t)
		}
	}

	return out
}

// FilterBetween keeps transactions with start <= date <= end, bounds inclusive.
func FilterBetween(txs []*ledger.Transaction, start, end time.Time) []*ledger.Transaction {
	var out []*ledger.Transaction

	for _, t := range txs {
		if !t.Date.Before(start) && !t.Date.After(end) {
			out = append(out, t)
		}
	}

	return out
}

// FilterByType keeps transactions of the given type.
func FilterByType(txs []*ledger.Transaction, typ ledger.Type) []*ledger.Transaction {
	var out []*ledger.Transaction

	for _, t := range txs {
		if t.Type == typ {
			out = append(out, t)
		}
	}

	return out
}

// FilterByCategory keeps transactions in the given category.
func FilterByCategory(txs []*ledger.Transaction, category string) []*ledger.Transaction {
	var out []*ledger.Transaction

	for _, t := range txs {
		if t.Category == category {
			out = append(out, t)
		}
	}

	return out
}

// FilterByPaymentMethod keeps transactions paid with the given method.
func FilterByPaymentMethod(txs []*ledger.Transaction, pm ledger.PaymentMethod) []*ledger.Transaction {
	var out []*ledger.Transaction

	for _, t := range txs {
		if t.PaymentMethod == pm {
			out = append(out, t)
		}
	}

	return out
}

// FilterNeedsReview keeps transactions still awaiting user confirmation.
func FilterNeedsReview(txs []*ledger.Transaction) []*ledger.Transaction {
	var out []*ledger.Transaction

	for _, t := range txs {
		if t.NeedsReview {
			out = append(out, t)
		}
	}

	return out
}
