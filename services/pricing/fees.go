package pricing

import (
	"time"

	"carebook/models"
)

// CalculateFees produces the full price breakdown for a base rate and
// quantity under the given pricing phase.
//
// The quantity's unit is caller-determined (hours, nights, days or weeks).
// If onboardedAt is set and falls inside the promotional window, the carer
// commission is waived regardless of phase; the client commission is
// unaffected. Only final output values are rounded to 2 decimals, so
// rounding error never compounds through intermediate products.
func (e *Engine) CalculateFees(rate, quantity float64, phase string, onboardedAt *time.Time) (models.FeeCalculation, error) {
	if rate < e.Cfg.MinimumRate {
		return models.FeeCalculation{}, newError(CodeInvalidRate,
			"rate %.2f is below the platform minimum %.2f", rate, e.Cfg.MinimumRate)
	}
	if quantity <= 0 {
		return models.FeeCalculation{}, newError(CodeInvalidQuantity,
			"quantity must be positive, got %v", quantity)
	}

	fees, ok := e.Cfg.Phases[phase]
	if !ok {
		// Defaulting here would silently misprice the transaction.
		return models.FeeCalculation{}, newError(CodeUnknownPricingPhase,
			"pricing phase %q is not configured", phase)
	}

	clientPct := fees.ClientFeePct
	carerPct := fees.CarerFeePct
	promo := false
	if onboardedAt != nil && onboardedAt.AddDate(0, e.Cfg.PromoWindowMonths, 0).After(e.now()) {
		carerPct = 0
		promo = true
	}

	subtotal := rate * quantity
	clientFee := round2(subtotal * clientPct)
	carerFee := round2(subtotal * carerPct)
	subtotal = round2(subtotal)

	return models.FeeCalculation{
		BaseRate:      rate,
		Quantity:      quantity,
		Subtotal:      subtotal,
		ClientFeePct:  clientPct,
		ClientFee:     clientFee,
		ClientTotal:   round2(subtotal + clientFee),
		CarerFeePct:   carerPct,
		CarerFee:      carerFee,
		CarerEarnings: round2(subtotal - carerFee),
		PromoApplied:  promo,
	}, nil
}
