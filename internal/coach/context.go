package coach

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/income"
	"github.com/mlowther/centsy/internal/ledger"
	"github.com/mlowther/centsy/internal/school"
)

// maxContextTransactions caps how much ledger history goes into the prompt.
const maxContextTransactions = 50

// BuildContext renders the owner's financial data as the plain-text block
// injected into the coaching system instruction. Transactions are listed
// newest first, capped at maxContextTransactions. A nil plan omits the
// school plan section.
func BuildContext(txs []*ledger.Transaction, sources []*income.Source, plan *school.Plan) string {
	var b strings.Builder

	b.WriteString("=== USER'S FINANCIAL DATA FROM DATABASE ===\n\n")

	b.WriteString("=== RECENT TRANSACTIONS ===\n")

	recent := make([]*ledger.Transaction, len(txs))
	copy(recent, txs)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date.After(recent[j].Date) })

	if len(recent) > maxContextTransactions {
		recent = recent[:maxContextTransactions]
	}

	if len(recent) == 0 {
		b.WriteString("No transactions found.\n")
	}

	for i, tx := range recent {
		fmt.Fprintf(&b, "%d. Date: %s, Merchant: %s, Amount: %s, Category: %s, Type: %s",
			i+1, formatDate(tx.Date), tx.Merchant, formatCurrency(tx.Amount), tx.Category, tx.Type)

		if tx.PaymentMethod != ledger.PaymentNone {
			fmt.Fprintf(&b, ", Payment Method: %s", tx.PaymentMethod)
		}

		b.WriteString("\n")
	}

	b.WriteString("\n=== INCOME SOURCES ===\n")

	if len(sources) == 0 {
		b.WriteString("No income sources found.\n")
	}

	for i, src := range sources {
		fmt.Fprintf(&b, "%d. %s: %s (%s) - Last received: %s\n",
			i+1, src.Name, formatCurrency(src.Amount), src.Frequency, formatDate(src.LastReceived))
	}

	if plan != nil {
		b.WriteString("\n=== SCHOOL PLAN INFORMATION ===\n")
		fmt.Fprintf(&b, "Flex Dollars Balance: %s\n", formatCurrency(plan.FlexDollarsBalance))
		fmt.Fprintf(&b, "Meal Swipes Remaining: %d\n", plan.MealSwipesRemaining)
		fmt.Fprintf(&b, "Term Start: %s\n", formatDate(plan.TermStart))
		fmt.Fprintf(&b, "Term End: %s\n", formatDate(plan.TermEnd))
		fmt.Fprintf(&b, "Average Daily Burn Rate: %s/day\n", formatCurrency(plan.AvgDailyBurn))

		if plan.ProjectedRunOut != nil {
			fmt.Fprintf(&b, "Projected Run Out Date: %s\n", formatDate(*plan.ProjectedRunOut))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// formatCurrency renders a dollar amount with thousands separators,
// e.g. $1,234.56.
func formatCurrency(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(s, ".")

	var grouped strings.Builder

	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}

	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
	}

	return fmt.Sprintf("%s$%s.%s", sign, grouped.String(), frac)
}
