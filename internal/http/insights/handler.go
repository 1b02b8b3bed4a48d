// Package insights exposes the aggregation engine over HTTP. Every
// endpoint evaluates against the owner's full ledger at request time;
// nothing here is cached or precomputed.
package insights

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/http/auth"
	"github.com/mlowther/centsy/internal/insights"
	"github.com/mlowther/centsy/internal/ledger"
	"github.com/mlowther/centsy/internal/school"
)

type Handler struct {
	ledgerSvc *ledger.Service
	schoolSvc *school.Service
}

func NewHandler(ledgerSvc *ledger.Service, schoolSvc *school.Service) *Handler {
	return &Handler{ledgerSvc: ledgerSvc, schoolSvc: schoolSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/spending", h.spending)
	r.Get("/income", h.income)
	r.Get("/categories", h.categories)
	r.Get("/chart", h.chart)
	r.Get("/net-income", h.netIncome)
	r.Get("/point", h.point)
	r.Get("/flex/history", h.flexHistory)
	r.Get("/flex/trend", h.flexTrend)
	r.Get("/flex/point", h.flexPoint)
	r.Get("/subscriptions", h.subscriptions)
	r.Get("/cashflow", h.cashFlow)
}

func horizonParam(r *http.Request) (insights.Horizon, bool) {
	h := insights.Horizon(r.URL.Query().Get("period"))
	return h, h.Valid()
}

func (h *Handler) transactions(r *http.Request) ([]*ledger.Transaction, error) {
	ownerID, _ := auth.OwnerID(r.Context())
	return h.ledgerSvc.List(r.Context(), ledger.ListFilter{OwnerID: ownerID})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type totalResponse struct {
	Period insights.Horizon `json:"period"`
	Total  decimal.Decimal  `json:"total"`
}

func (h *Handler) spending(w http.ResponseWriter, r *http.Request) {
	horizon, ok := horizonParam(r)
	if !ok {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}

	txs, err := h.transactions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, totalResponse{
		Period: horizon,
		Total:  insights.PeriodSpending(txs, horizon, time.Now()),
	})
}

func (h *Handler) income(w http.ResponseWriter, r *http.Request) {
	horizon, ok := horizonParam(r)
	if !ok {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}

	txs, err := h.transactions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, totalResponse{
		Period: horizon,
		Total:  insights.PeriodIncome(txs, horizon, time.Now()),
	})
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	horizon, ok := horizonParam(r)
	if !ok {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}

	txs, err := h.transactions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, insights.SpendingByCategory(txs, horizon, time.Now()))
}

func (h *Handler) chart(w http.ResponseWriter, r *http.Request) {
	horizon, ok := horizonParam(r)
	if !ok {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}

	txs, err := h.transactions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, insights.PeriodChartData(txs, horizon, time.Now()))
}

func (h *Handler) netIncome(w http.ResponseWriter, r *http.Request) {
	horizon, ok := horizonParam(r)
	if !ok {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}

	txs, err := h.transactions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, insights.NetIncomeBars(txs, horizon, time.Now()))
}

// point resolves a chart scrub position (ratio in [0,1]) to the exact
// cumulative spend at that moment of the period.
func (h *Handler) point(w http.ResponseWriter, r *http.Request) {
	horizon, ok := horizonParam(r)
	if !ok {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}

	ratio, err := strconv.ParseFloat(r.URL.Query().Get("ratio"), 64)
	if err != nil {
		http.Error(w, "invalid ratio", http.StatusBadRequest)
		return
	}

	txs, err := h.transactions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	now := time.Now()
	series := insights.PeriodChartData(txs, horizon, now)
	spends := insights.FilterByType(txs, ledger.TypeSpend)

	writeJSON(w, insights.PointAt(ratio, insights.PeriodStart(horizon, now), now, series, spends))
}

func (h *Handler) plan(w http.ResponseWriter, r *http.Request) (*school.Plan, bool) {
	ownerID, _ := auth.OwnerID(r.Context())

	plan, err := h.schoolSvc.Get(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, school.ErrNotFound) {
			http.Error(w, "school plan not set up", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return nil, false
	}

	return plan, true
}

func (h *Handler) flexHistory(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.plan(w, r)
	if !ok {
		return
	}

	txs, err := h.transactions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, insights.FlexBalanceHistory(plan.FlexDollarsBalance, plan.TermStart, txs, time.Now()))
}

func (h *Handler) flexTrend(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.plan(w, r)
	if !ok {
		return
	}

	now := time.Now()

	burn := plan.AvgDailyBurn
	if burn.IsZero() {
		burn = insights.BurnRate(plan.FlexDollarsBalance, plan.TermStart, plan.TermEnd, now)
	}

	writeJSON(w, insights.FlexTrendLine(plan.FlexDollarsBalance, now, burn))
}

func (h *Handler) flexPoint(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.plan(w, r)
	if !ok {
		return
	}

	ratio, err := strconv.ParseFloat(r.URL.Query().Get("ratio"), 64)
	if err != nil {
		http.Error(w, "invalid ratio", http.StatusBadRequest)
		return
	}

	txs, err := h.transactions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	history := insights.FlexBalanceHistory(plan.FlexDollarsBalance, plan.TermStart, txs, time.Now())

	point, ok := insights.NearestFlexPoint(ratio, history)
	if !ok {
		http.Error(w, "no balance history", http.StatusNotFound)
		return
	}

	writeJSON(w, point)
}

func (h *Handler) subscriptions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.transactions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, insights.DeriveSubscriptions(txs))
}

func (h *Handler) cashFlow(w http.ResponseWriter, r *http.Request) {
	txs, err := h.transactions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, insights.CashFlowSummary(txs))
}
