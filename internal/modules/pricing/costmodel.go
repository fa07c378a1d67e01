package pricing

import (
	"math"

	"tourquote/internal/domain"
)

// LineInput is the raw material for one line item calculation.
type LineInput struct {
	CalculationType domain.CalculationType
	BasePrice       float64
	Quantity        float64
	MarkupPercent   float64
}

// CalculateLine computes a line subtotal under the line's cost model, then
// applies markup uniformly. participants is the estimate's authoritative
// party size; Quantity defaults to 1 where the model allows it.
func CalculateLine(in LineInput, participants int) (domain.CalculationResult, error) {
	var zero domain.CalculationResult

	if math.IsNaN(in.BasePrice) || math.IsInf(in.BasePrice, 0) {
		return zero, validationf("base price is not a finite number")
	}
	if in.BasePrice < 0 {
		return zero, validationf("base price must not be negative, got %.2f", in.BasePrice)
	}
	if participants < 0 {
		return zero, validationf("participant count must not be negative, got %d", participants)
	}
	if in.Quantity < 0 {
		return zero, validationf("quantity must not be negative, got %.2f", in.Quantity)
	}
	if in.MarkupPercent < 0 || in.MarkupPercent > 100 {
		return zero, validationf("markup percent must be in [0,100], got %.2f", in.MarkupPercent)
	}

	var subtotal float64
	switch in.CalculationType {
	case domain.CalcPerPerson:
		if participants == 0 {
			return zero, validationf("per_person line requires participants")
		}
		subtotal = in.BasePrice * float64(participants)
	case domain.CalcPerGroup:
		qty := in.Quantity
		if qty == 0 {
			qty = 1
		}
		subtotal = in.BasePrice * qty
	case domain.CalcPerUnit, domain.CalcPerDay:
		if in.Quantity <= 0 {
			return zero, validationf("%s line requires a positive quantity", in.CalculationType)
		}
		subtotal = in.BasePrice * in.Quantity
	default:
		return zero, validationf("unknown calculation type %q", in.CalculationType)
	}

	return applyMarkup(subtotal, in.MarkupPercent)
}

func applyMarkup(subtotal, markupPercent float64) (domain.CalculationResult, error) {
	r := domain.CalculationResult{
		Subtotal:      round2(subtotal),
		MarkupPercent: markupPercent,
	}
	r.MarkupAmount = round2(r.Subtotal * markupPercent / 100)
	r.Total = round2(r.Subtotal + r.MarkupAmount)

	if err := CheckLine(r); err != nil {
		return domain.CalculationResult{}, err
	}
	return r, nil
}

// CheckLine asserts the line-level invariant total == round(subtotal+markup).
func CheckLine(r domain.CalculationResult) error {
	return checkIntegrity("line total", round2(r.Subtotal+r.MarkupAmount), r.Total)
}

// CheckTotals asserts the estimate-level invariant
// final == round(base+generalMarkup).
func CheckTotals(baseTotal, generalMarkupAmount, finalTotal float64) error {
	return checkIntegrity("estimate total", round2(baseTotal+generalMarkupAmount), finalTotal)
}
