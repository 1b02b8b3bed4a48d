package school

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mlowther/centsy/internal/http/auth"
	"github.com/mlowther/centsy/internal/insights"
	"github.com/mlowther/centsy/internal/school"
)

type Handler struct {
	svc *school.Service
}

func NewHandler(svc *school.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/plan", h.get)
	r.Put("/plan", h.set)
}

type planResponse struct {
	FlexDollarsBalance  decimal.Decimal `json:"flex_dollars_balance"`
	MealSwipesRemaining int             `json:"meal_swipes_remaining"`
	TermStart           time.Time       `json:"term_start"`
	TermEnd             time.Time       `json:"term_end"`
	AvgDailyBurn        decimal.Decimal `json:"avg_daily_burn"`
	ProjectedRunOut     *time.Time      `json:"projected_run_out,omitempty"`
}

func toResponse(p *school.Plan) planResponse {
	return planResponse{
		FlexDollarsBalance:  p.FlexDollarsBalance,
		MealSwipesRemaining: p.MealSwipesRemaining,
		TermStart:           p.TermStart,
		TermEnd:             p.TermEnd,
		AvgDailyBurn:        p.AvgDailyBurn,
		ProjectedRunOut:     p.ProjectedRunOut,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	plan, err := h.svc.Get(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, school.ErrNotFound) {
			http.Error(w, "school plan not set up", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(plan)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setPlanRequest struct {
	FlexDollarsBalance  decimal.Decimal `json:"flex_dollars_balance"`
	MealSwipesRemaining int             `json:"meal_swipes_remaining"`
	TermStart           time.Time       `json:"term_start"`
	TermEnd             time.Time       `json:"term_end"`
	AvgDailyBurn        decimal.Decimal `json:"avg_daily_burn"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	var req setPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	plan := &school.Plan{
		OwnerID:             ownerID,
		FlexDollarsBalance:  req.FlexDollarsBalance,
		MealSwipesRemaining: req.MealSwipesRemaining,
		TermStart:           req.TermStart,
		TermEnd:             req.TermEnd,
		AvgDailyBurn:        req.AvgDailyBurn,
	}

	now := time.Now()

	if plan.AvgDailyBurn.IsZero() {
		plan.AvgDailyBurn = insights.BurnRate(plan.FlexDollarsBalance, plan.TermStart, plan.TermEnd, now)
	}

	if trend := insights.FlexTrendLine(plan.FlexDollarsBalance, now, plan.AvgDailyBurn); len(trend) > 0 {
		runOut := trend[len(trend)-1].Date
		plan.ProjectedRunOut = &runOut
	}

	if err := h.svc.Set(r.Context(), plan); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(plan)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
