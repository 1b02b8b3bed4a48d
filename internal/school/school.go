package school

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("school plan not found")

// Plan is the singleton per-owner meal plan: a prepaid flex-dollar balance
// and a meal swipe counter that must last from TermStart to TermEnd.
type Plan struct {
	OwnerID             uuid.UUID
	FlexDollarsBalance  decimal.Decimal
	MealSwipesRemaining int
	TermStart           time.Time
	TermEnd             time.Time
	AvgDailyBurn        decimal.Decimal
	ProjectedRunOut     *time.Time
}

// Validate rejects plans that would make downstream series nonsensical.
func (p *Plan) Validate() error {
	if !p.TermEnd.After(p.TermStart) {
		return fmt.Errorf("term end %s must be after term start %s",
			p.TermEnd.Format(time.DateOnly), p.TermStart.Format(time.DateOnly))
	}

	if p.FlexDollarsBalance.IsNegative() {
		return fmt.Errorf("flex dollar balance must not be negative: %s", p.FlexDollarsBalance)
	}

	if p.MealSwipesRemaining < 0 {
		return fmt.Errorf("meal swipes remaining must not be negative: %d", p.MealSwipesRemaining)
	}

	return nil
}

// SpendFlex deducts a flex purchase from the balance, clamping at zero.
func (p *Plan) SpendFlex(amount decimal.Decimal) {
	p.FlexDollarsBalance = p.FlexDollarsBalance.Sub(amount)
	if p.FlexDollarsBalance.IsNegative() {
		p.FlexDollarsBalance = decimal.Zero
	}
}

// UseSwipe consumes one meal swipe, clamping at zero.
func (p *Plan) UseSwipe() {
	if p.MealSwipesRemaining > 0 {
		p.MealSwipesRemaining--
	}
}
