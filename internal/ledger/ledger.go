package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transaction not found")

// Type represents the direction of a transaction (money out or money in).
type Type string

const (
	TypeSpend Type = "spend"
	TypeEarn  Type = "earn"
)

// PaymentMethod represents how a transaction was paid. Flex and swipe
// transactions additionally deplete the owner's school plan at creation time.
type PaymentMethod string

const (
	PaymentNone  PaymentMethod = ""
	PaymentCash  PaymentMethod = "cash"
	PaymentFlex  PaymentMethod = "flex"
	PaymentSwipe PaymentMethod = "swipe"
)

// CategorySubscriptions is the category that subscription entities are
// derived from.
const CategorySubscriptions = "Subscriptions"

// Transaction represents a single financial event in the ledger.
type Transaction struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Date          time.Time
	Merchant      string
	Category      string
	Amount        decimal.Decimal
	Type          Type
	PaymentMethod PaymentMethod
	NeedsReview   bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// IsSpend reports whether the transaction decreases available money.
func (t *Transaction) IsSpend() bool {
	return t.Type == TypeSpend
}
