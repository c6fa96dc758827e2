// Package fees computes the service fee charged against a gross
// amount: a driver's mandatory periodic fee, or the deduction taken
// from a withdrawal payout.
package fees

import (
	"motora/internal/models"
	"motora/internal/utils"
)

// Config is a service-fee rule: a fixed currency amount or a
// percentage (0-100) of the gross.
type Config struct {
	Type  models.ServiceFeeType
	Value float64
}

// Calculate applies the fee config to a gross amount and returns the
// full breakdown. Pure; out-of-range inputs are clamped rather than
// rejected because this feeds directly into UI rendering.
//
// A fixed fee never exceeds the amount it is deducted from, so the net
// can never go negative. Rounding happens once, at the point of
// charge, to avoid compounding rounding error across chained
// calculations.
func Calculate(cfg Config, grossAmount float64) models.FeeBreakdown {
	if grossAmount < 0 {
		grossAmount = 0
	}
	value := cfg.Value
	if value < 0 {
		value = 0
	}

	var charged float64
	switch cfg.Type {
	case models.ServiceFeeTypeFixed:
		charged = value
		if charged > grossAmount {
			charged = grossAmount
		}
	case models.ServiceFeeTypePercent:
		charged = grossAmount * (value / 100)
	default:
		// Unknown fee type charges nothing rather than guessing.
		charged = 0
	}

	charged = utils.RoundCurrency(charged)

	net := grossAmount - charged
	if net < 0 {
		net = 0
	}

	return models.FeeBreakdown{
		Type:          cfg.Type,
		Value:         cfg.Value,
		GrossAmount:   utils.RoundCurrency(grossAmount),
		ChargedAmount: charged,
		NetAmount:     utils.RoundCurrency(net),
	}
}
