// Package pricing turns a service type's configuration and a trip
// distance into a price estimate, honoring configuration precedence
// and surge windows.
package pricing

import (
	"context"
	"errors"
	"math"
	"time"

	"motora/internal/models"
	"motora/internal/utils"
	"motora/pkg/logger"
)

// ErrServiceUnavailable is returned when availability rules exist for
// the service type but none covers the requested time.
var ErrServiceUnavailable = errors.New("service type not available at requested time")

// ConfigProvider supplies pricing and availability data to the engine.
// The engine never reaches into a storage client directly; tests
// substitute a provider with fixed configuration.
type ConfigProvider interface {
	PricingConfig(ctx context.Context, serviceType models.ServiceType, region string) (*models.PricingConfiguration, error)
	AvailabilityRules(ctx context.Context, serviceType models.ServiceType, region string) ([]*models.AvailabilityRule, error)
}

type Engine struct {
	provider ConfigProvider
	logger   *logger.Logger
}

func NewEngine(provider ConfigProvider, log *logger.Logger) *Engine {
	return &Engine{
		provider: provider,
		logger:   log,
	}
}

// ComputePrice applies the pricing precedence to produce a price:
//
//  1. An active fixed price wins, regardless of distance.
//  2. Otherwise an active per-kilometer rate applies.
//  3. Otherwise the fallback formula keeps the quote screen from ever
//     showing a missing price.
//
// The surge multiplier is applied last and the result rounded half-up
// to two decimals. Out-of-range inputs are clamped, never rejected:
// this feeds live UI and must always produce a number. The fallback
// return reports whether the fallback formula was used.
func ComputePrice(cfg *models.PricingConfiguration, distanceKm, surgeMultiplier float64) (price float64, fallback bool) {
	if distanceKm < 0 {
		distanceKm = 0
	}
	// A surge below 1.0 is a misconfigured rule, not a discount.
	if surgeMultiplier < utils.MinSurgeMultiplier {
		surgeMultiplier = utils.MinSurgeMultiplier
	}

	var base float64
	switch {
	case cfg != nil && cfg.FixedPriceActive && cfg.FixedPrice != nil:
		base = *cfg.FixedPrice
	case cfg != nil && cfg.PerKilometerActive:
		base = cfg.PerKilometerRate * distanceKm
	default:
		base = utils.FallbackBaseFare + distanceKm*utils.FallbackPerKilometer
		fallback = true
	}

	return utils.RoundCurrency(base * surgeMultiplier), fallback
}

// EstimateDurationMin derives a rough trip duration from distance at
// the configured average urban speed, with a one-minute floor.
func EstimateDurationMin(distanceKm float64) int {
	if distanceKm < 0 {
		distanceKm = 0
	}
	minutes := int(math.Round(distanceKm / utils.AverageSpeedKmh * 60))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Quote resolves configuration and availability for a service type and
// computes the passenger-facing estimate at the given time.
//
// A missing or rule-less configuration falls back rather than failing;
// the fallback path is logged as an admin data-entry gap. Availability
// is stricter: when rules exist for the service/region but none covers
// the requested time, the service is not offered and the quote errors
// with ErrServiceUnavailable. A region with no rules at all is treated
// as always available at surge 1.0.
func (e *Engine) Quote(ctx context.Context, serviceType models.ServiceType, region string, distanceKm float64, at time.Time) (*models.RideQuote, error) {
	cfg, err := e.provider.PricingConfig(ctx, serviceType, region)
	if err != nil {
		// Treated like a missing configuration: quote via fallback.
		e.logger.WithError(err).WithFields(map[string]interface{}{
			"service_type": string(serviceType),
			"region":       region,
		}).Warn("Pricing configuration unavailable, quoting via fallback")
		cfg = nil
	}

	surge, err := e.resolveSurge(ctx, serviceType, region, at)
	if err != nil {
		return nil, err
	}

	if distanceKm > utils.MaxQuoteDistanceKm {
		distanceKm = utils.MaxQuoteDistanceKm
	}

	price, fallback := ComputePrice(cfg, distanceKm, surge)
	if fallback {
		e.logger.LogFallbackQuote(string(serviceType), region, distanceKm, price)
	}

	currency := utils.DefaultCurrency
	if cfg != nil && cfg.Currency != "" {
		currency = cfg.Currency
	}

	return &models.RideQuote{
		ServiceType:          serviceType,
		Region:               region,
		DistanceKm:           distanceKm,
		EstimatedPrice:       price,
		EstimatedDurationMin: EstimateDurationMin(distanceKm),
		SurgeMultiplier:      surge,
		Currency:             currency,
		FormattedPrice:       utils.FormatBRL(price),
		FallbackPricing:      fallback,
	}, nil
}

// QuoteOffer prices a negotiated ride where the passenger names the
// fare in integer cents. Availability rules still gate the service,
// but no pricing rule or surge applies: the offer is the price. The
// cents-to-units conversion happens here, at the boundary, so the rest
// of the money math only ever sees base currency units.
func (e *Engine) QuoteOffer(ctx context.Context, serviceType models.ServiceType, region string, offerCents int64, at time.Time) (*models.RideQuote, error) {
	if _, err := e.resolveSurge(ctx, serviceType, region, at); err != nil {
		return nil, err
	}

	price := utils.RoundCurrency(utils.CentsToAmount(offerCents))

	return &models.RideQuote{
		ServiceType:     serviceType,
		Region:          region,
		EstimatedPrice:  price,
		SurgeMultiplier: utils.MinSurgeMultiplier,
		Currency:        utils.DefaultCurrency,
		FormattedPrice:  utils.FormatBRL(price),
	}, nil
}

// resolveSurge applies the availability rules at the given time. Rules
// present but none covering means the service is not offered; no rules
// at all means always available at surge 1.0. Overlapping windows take
// the highest surge, clamped to the allowed range.
func (e *Engine) resolveSurge(ctx context.Context, serviceType models.ServiceType, region string, at time.Time) (float64, error) {
	rules, err := e.provider.AvailabilityRules(ctx, serviceType, region)
	if err != nil {
		return 0, err
	}

	surge := utils.MinSurgeMultiplier
	if len(rules) > 0 {
		covered := false
		for _, rule := range rules {
			if !rule.Covers(at) {
				continue
			}
			covered = true
			if rule.SurgeMultiplier > surge {
				surge = rule.SurgeMultiplier
			}
		}
		if !covered {
			return 0, ErrServiceUnavailable
		}
	}
	if surge > utils.MaxSurgeMultiplier {
		surge = utils.MaxSurgeMultiplier
	}

	return surge, nil
}
