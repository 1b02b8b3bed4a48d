package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/ledger"
)

type transactionResponse struct {
	ID            uuid.UUID            `json:"id"`
	Date          time.Time            `json:"date"`
	Merchant      string               `json:"merchant"`
	Category      string               `json:"category"`
	Amount        decimal.Decimal      `json:"amount"`
	Type          ledger.Type          `json:"type"`
	PaymentMethod ledger.PaymentMethod `json:"payment_method,omitempty"`
	NeedsReview   bool                 `json:"needs_review"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     *time.Time           `json:"updated_at,omitempty"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		Date:          tx.Date,
		Merchant:      tx.Merchant,
		Category:      tx.Category,
		Amount:        tx.Amount,
		Type:          tx.Type,
		PaymentMethod: tx.PaymentMethod,
		NeedsReview:   tx.NeedsReview,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
