package income

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/http/auth"
	"github.com/mlowther/centsy/internal/income"
)

type Handler struct {
	svc *income.Service
}

func NewHandler(svc *income.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type sourceResponse struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Amount       decimal.Decimal  `json:"amount"`
	Frequency    income.Frequency `json:"frequency"`
	LastReceived time.Time        `json:"last_received"`
}

func toResponse(src *income.Source) sourceResponse {
	return sourceResponse{
		ID:           src.ID,
		Name:         src.Name,
		Amount:       src.Amount,
		Frequency:    src.Frequency,
		LastReceived: src.LastReceived,
	}
}

type createSourceRequest struct {
	Name         string           `json:"name"`
	Amount       decimal.Decimal  `json:"amount"`
	Frequency    income.Frequency `json:"frequency"`
	LastReceived time.Time        `json:"last_received"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	var req createSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	src, err := h.svc.Create(r.Context(), ownerID, income.CreateParams{
		Name:         req.Name,
		Amount:       req.Amount,
		Frequency:    req.Frequency,
		LastReceived: req.LastReceived,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(src)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	sources, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]sourceResponse, 0, len(sources))
	for _, src := range sources {
		resp = append(resp, toResponse(src))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateSourceRequest struct {
	Name         *string           `json:"name,omitempty"`
	Amount       *decimal.Decimal  `json:"amount,omitempty"`
	Frequency    *income.Frequency `json:"frequency,omitempty"`
	LastReceived *time.Time        `json:"last_received,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sources, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var src *income.Source

	for _, s := range sources {
		if s.ID == id {
			src = s
			break
		}
	}

	if src == nil {
		http.Error(w, "income source not found", http.StatusNotFound)
		return
	}

	if req.Name != nil {
		src.Name = *req.Name
	}

	if req.Amount != nil {
		src.Amount = *req.Amount
	}

	if req.Frequency != nil {
		src.Frequency = *req.Frequency
	}

	if req.LastReceived != nil {
		src.LastReceived = *req.LastReceived
	}

	if err := h.svc.Update(r.Context(), src); err != nil {
		if errors.Is(err, income.ErrNotFound) {
			http.Error(w, "income source not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(src)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
