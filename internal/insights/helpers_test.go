package insights_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/ledger"
)

// fixed reference instant used across the package tests
var now = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func spend(date time.Time, amount float64, category string) *ledger.Transaction {
	return &ledger.Transaction{
		ID:       uuid.New(),
		Date:     date,
		Merchant: "merchant",
		Category: category,
		Amount:   decimal.NewFromFloat(amount),
		Type:     ledger.TypeSpend,
	}
}

func earn(date time.Time, amount float64) *ledger.Transaction {
	return &ledger.Transaction{
		ID:       uuid.New(),
		Date:     date,
		Merchant: "employer",
		Category: "Income",
		Amount:   decimal.NewFromFloat(amount),
		Type:     ledger.TypeEarn,
	}
}

func flexSpend(date time.Time, amount float64) *ledger.Transaction {
	t := spend(date, amount, "Food")
	t.PaymentMethod = ledger.PaymentFlex

	return t
}

func swipeSpend(date time.Time) *ledger.Transaction {
	t := spend(date, 0, "Food")
	t.PaymentMethod = ledger.PaymentSwipe

	return t
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
