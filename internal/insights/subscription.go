package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/ledger"
)

// Subscription is a recurring charge synthesized from the ledger; it is never
// persisted.
type Subscription struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	MonthlyCost     decimal.Decimal `json:"monthlyCost"`
	LastChargedDate time.Time       `json:"lastChargedDate"`
	RenewalDate     time.Time       `json:"renewalDate"`
	Category        string          `json:"category"`
}

// DeriveSubscriptions clusters spend transactions in the Subscriptions
// category by exact merchant string and emits one entity per merchant, built
// from that merchant's most recent charge with a fixed 30-day renewal cycle.
// When two charges share the maximum date, the one with the greatest
// transaction ID wins. Output is sorted by name.
func DeriveSubscriptions(txs []*ledger.Transaction) []Subscription {
	latest := make(map[string]*ledger.Transaction)

	for _, t := range txs {
		if t.Category != ledger.CategorySubscriptions || t.Type != ledger.TypeSpend {
			continue
		}

		existing, ok := latest[t.Merchant]
		if !ok || t.Date.After(existing.Date) ||
			(t.Date.Equal(existing.Date) && t.ID.String() > existing.ID.String()) {
			latest[t.Merchant] = t
		}
	}

	subs := make([]Subscription, 0, len(latest))

	for merchant, t := range latest {
		subs = append(subs, Subscription{
			ID:              "sub-" + strings.ReplaceAll(strings.ToLower(merchant), " ", "-"),
			Name:            merchant,
			MonthlyCost:     t.Amount,
			LastChargedDate: t.Date,
			RenewalDate:     t.Date.AddDate(0, 0, 30),
			Category:        ledger.CategorySubscriptions,
		})
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].Name < subs[j].Name
	})

	return subs
}

// CashFlow is an unwindowed summary over a supplied transaction list.
type CashFlow struct {
	MonthIncome   decimal.Decimal            `json:"monthIncome"`
	MonthSpending decimal.Decimal            `json:"monthSpending"`
	Net           decimal.Decimal            `json:"net"`
	ByCategory    map[string]decimal.Decimal `json:"byCategory"`
	Chart         []SeriesPoint              `json:"chartData"`
}

// CashFlowSummary totals the entire supplied list (no period filtering) and
// builds the full-history cumulative spend series in ascending date order.
func CashFlowSummary(txs []*ledger.Transaction) CashFlow {
	spends := FilterByType(txs, ledger.TypeSpend)

	byCategory := make(map[string]decimal.Decimal)
	for _, t := range spends {
		byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
	}

	sorted := make([]*ledger.Transaction, len(spends))
	copy(sorted, spends)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	chart := make([]SeriesPoint, 0, len(sorted))

	cumulative := decimal.Zero
	for _, t := range sorted {
		cumulative = cumulative.Add(t.Amount)
		chart = append(chart, SeriesPoint{Date: t.Date, Amount: cumulative})
	}

	income := sumAmounts(FilterByType(txs, ledger.TypeEarn))
	spending := sumAmounts(spends)

	return CashFlow{
		MonthIncome:   income,
		MonthSpending: spending,
		Net:           income.Sub(spending),
		ByCategory:    byCategory,
		Chart:         chart,
	}
}
