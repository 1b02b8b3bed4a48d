package budget

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("budget not found")

// Budget is a per-category monthly ceiling with a running spent-to-date
// total. One per category per owner.
type Budget struct {
	Category    string
	Monthly     decimal.Decimal
	SpentToDate decimal.Decimal
	Icon        string
	Color       string
}
