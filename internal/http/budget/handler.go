package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/budget"
	"github.com/mlowther/centsy/internal/http/auth"
	"github.com/mlowther/centsy/internal/insights"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Put("/{category}", h.set)
	r.Get("/{category}", h.get)
	r.Delete("/{category}", h.delete)
}

type budgetResponse struct {
	Category    string                `json:"category"`
	Monthly     decimal.Decimal       `json:"monthly"`
	SpentToDate decimal.Decimal       `json:"spent_to_date"`
	PercentUsed decimal.Decimal       `json:"percent_used"`
	Status      insights.BudgetStatus `json:"status"`
	Icon        string                `json:"icon,omitempty"`
	Color       string                `json:"color,omitempty"`
}

type budgetListResponse struct {
	Budgets       []budgetResponse `json:"budgets"`
	TotalBudgeted decimal.Decimal  `json:"total_budgeted"`
	TotalSpent    decimal.Decimal  `json:"total_spent"`
	TotalOver     decimal.Decimal  `json:"total_over_budget"`
}

func toResponse(b budget.Budget) budgetResponse {
	return budgetResponse{
		Category:    b.Category,
		Monthly:     b.Monthly,
		SpentToDate: b.SpentToDate,
		PercentUsed: insights.PercentUsed(b),
		Status:      insights.StatusOf(b),
		Icon:        b.Icon,
		Color:       b.Color,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	budgets, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := budgetListResponse{
		Budgets:       make([]budgetResponse, 0, len(budgets)),
		TotalBudgeted: insights.TotalBudgeted(budgets),
		TotalSpent:    insights.TotalSpent(budgets),
		TotalOver:     insights.TotalOverBudget(budgets),
	}

	for _, b := range budgets {
		resp.Budgets = append(resp.Budgets, toResponse(b))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	category, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil {
		http.Error(w, "invalid category", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), ownerID, category)
	if err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(*b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setBudgetRequest struct {
	Monthly     decimal.Decimal `json:"monthly"`
	SpentToDate decimal.Decimal `json:"spent_to_date"`
	Icon        string          `json:"icon,omitempty"`
	Color       string          `json:"color,omitempty"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	category, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil {
		http.Error(w, "invalid category", http.StatusBadRequest)
		return
	}

	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b := budget.Budget{
		Category:    category,
		Monthly:     req.Monthly,
		SpentToDate: req.SpentToDate,
		Icon:        req.Icon,
		Color:       req.Color,
	}

	if err := h.svc.Set(r.Context(), ownerID, b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	category, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil {
		http.Error(w, "invalid category", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, category); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
