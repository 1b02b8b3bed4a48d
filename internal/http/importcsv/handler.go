package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/http/auth"
	"github.com/mlowther/centsy/internal/importer"
	"github.com/mlowther/centsy/internal/ledger"
)

type Handler struct {
	parser *importer.Parser
	txSvc  *ledger.Service
}

func NewHandler(parser *importer.Parser, txSvc *ledger.Service) *Handler {
	return &Handler{parser: parser, txSvc: txSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type transactionResponse struct {
	ID            uuid.UUID            `json:"id"`
	Date          time.Time            `json:"date"`
	Merchant      string               `json:"merchant"`
	Category      string               `json:"category"`
	Amount        decimal.Decimal      `json:"amount"`
	Type          ledger.Type          `json:"type"`
	PaymentMethod ledger.PaymentMethod `json:"payment_method,omitempty"`
	NeedsReview   bool                 `json:"needs_review"`
}

type importSuccessResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.txSvc.CreateBatch(r.Context(), ownerID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(txs []*ledger.Transaction) importSuccessResponse {
	responses := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, transactionResponse{
			ID:            tx.ID,
			Date:          tx.Date,
			Merchant:      tx.Merchant,
			Category:      tx.Category,
			Amount:        tx.Amount,
			Type:          tx.Type,
			PaymentMethod: tx.PaymentMethod,
			NeedsReview:   tx.NeedsReview,
		})
	}

	return importSuccessResponse{
		Imported:     len(txs),
		Transactions: responses,
	}
}
