package pricing

import (
	"carebook/models"
)

// Resolve picks the base per-unit price for a service selection.
//
// Precedence: a negotiated rate from an accepted proposal always wins, then
// the provider's rate card entry for the subtype, then the card's type-level
// default, then the platform default. A resolved rate below the platform
// minimum fails with rateBelowMinimum; it is never clamped, the caller must
// block the transaction.
func (e *Engine) Resolve(sel models.ServiceSelection, card models.RateCard, negotiated *float64) (float64, error) {
	rate := e.Cfg.DefaultRate

	switch {
	case negotiated != nil:
		rate = *negotiated
	default:
		if r, ok := card.Subtypes[sel.Subtype]; ok {
			rate = r
		} else if r, ok := card.TypeDefaults[sel.Type]; ok {
			rate = r
		}
	}

	if rate < e.Cfg.MinimumRate {
		return 0, newError(CodeRateBelowMinimum,
			"resolved rate %.2f is below the platform minimum %.2f", rate, e.Cfg.MinimumRate)
	}
	return rate, nil
}
