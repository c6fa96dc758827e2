package pricing

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"motora/internal/models"
	"motora/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.SetOutput(io.Discard)
	return log
}

type fixedProvider struct {
	cfg    *models.PricingConfiguration
	cfgErr error
	rules  []*models.AvailabilityRule
}

func (p *fixedProvider) PricingConfig(ctx context.Context, serviceType models.ServiceType, region string) (*models.PricingConfiguration, error) {
	if p.cfgErr != nil {
		return nil, p.cfgErr
	}
	return p.cfg, nil
}

func (p *fixedProvider) AvailabilityRules(ctx context.Context, serviceType models.ServiceType, region string) ([]*models.AvailabilityRule, error) {
	return p.rules, nil
}

func floatPtr(v float64) *float64 { return &v }

func TestComputePricePrecedence(t *testing.T) {
	tests := []struct {
		name         string
		cfg          *models.PricingConfiguration
		distanceKm   float64
		surge        float64
		want         float64
		wantFallback bool
	}{
		{
			name: "fixed price ignores distance",
			cfg: &models.PricingConfiguration{
				FixedPrice:         floatPtr(25),
				FixedPriceActive:   true,
				PerKilometerRate:   3,
				PerKilometerActive: true,
			},
			distanceKm: 120,
			surge:      1,
			want:       25.00,
		},
		{
			name: "per kilometer rate",
			cfg: &models.PricingConfiguration{
				PerKilometerRate:   2.8,
				PerKilometerActive: true,
			},
			distanceKm: 10,
			surge:      1,
			want:       28.00,
		},
		{
			name: "fixed price flag without value falls through to per-km",
			cfg: &models.PricingConfiguration{
				FixedPriceActive:   true,
				PerKilometerRate:   2,
				PerKilometerActive: true,
			},
			distanceKm: 5,
			surge:      1,
			want:       10.00,
		},
		{
			name:         "no active rule uses fallback formula",
			cfg:          &models.PricingConfiguration{},
			distanceKm:   4,
			surge:        1,
			want:         15.00, // 5 + 4*2.5
			wantFallback: true,
		},
		{
			name:         "nil configuration uses fallback formula",
			cfg:          nil,
			distanceKm:   0,
			surge:        1,
			want:         5.00,
			wantFallback: true,
		},
		{
			name: "surge multiplies the base",
			cfg: &models.PricingConfiguration{
				PerKilometerRate:   2,
				PerKilometerActive: true,
			},
			distanceKm: 10,
			surge:      1.5,
			want:       30.00,
		},
		{
			name: "surge below one clamps to one, never discounts",
			cfg: &models.PricingConfiguration{
				FixedPrice:       floatPtr(20),
				FixedPriceActive: true,
			},
			distanceKm: 3,
			surge:      0.5,
			want:       20.00,
		},
		{
			name: "negative distance clamps to zero",
			cfg: &models.PricingConfiguration{
				PerKilometerRate:   3,
				PerKilometerActive: true,
			},
			distanceKm: -7,
			surge:      1,
			want:       0.00,
		},
		{
			name: "result rounds half-up to two decimals",
			cfg: &models.PricingConfiguration{
				PerKilometerRate:   2.345,
				PerKilometerActive: true,
			},
			distanceKm: 3,
			surge:      1,
			want:       7.04, // 7.035 rounds half-up
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fallback := ComputePrice(tt.cfg, tt.distanceKm, tt.surge)
			if got != tt.want {
				t.Errorf("ComputePrice() = %v, want %v", got, tt.want)
			}
			if fallback != tt.wantFallback {
				t.Errorf("fallback = %v, want %v", fallback, tt.wantFallback)
			}
		})
	}
}

func TestComputePriceFixedIsDistanceIndependent(t *testing.T) {
	cfg := &models.PricingConfiguration{
		FixedPrice:         floatPtr(18.5),
		FixedPriceActive:   true,
		PerKilometerRate:   4,
		PerKilometerActive: true,
	}

	for _, km := range []float64{0, 0.5, 1, 10, 99.9, 400} {
		got, _ := ComputePrice(cfg, km, 2)
		if got != 37.00 {
			t.Errorf("ComputePrice(distance=%v) = %v, want 37.00 regardless of distance", km, got)
		}
	}
}

func TestComputePricePerKmLinearity(t *testing.T) {
	cfg := &models.PricingConfiguration{
		PerKilometerRate:   3,
		PerKilometerActive: true,
	}
	surge := 1.2

	for _, km := range []float64{1, 2, 5, 8, 13} {
		got, _ := ComputePrice(cfg, km, surge)
		single, _ := ComputePrice(cfg, 1, surge)
		want := single * km
		if diff := got - want; diff > 0.02 || diff < -0.02 {
			t.Errorf("ComputePrice(distance=%v) = %v, want linear %v", km, got, want)
		}
	}
}

func TestEstimateDurationMin(t *testing.T) {
	tests := []struct {
		distanceKm float64
		want       int
	}{
		{0, 1},
		{0.2, 1},
		{15, 30},
		{30, 60},
		{-4, 1},
	}

	for _, tt := range tests {
		if got := EstimateDurationMin(tt.distanceKm); got != tt.want {
			t.Errorf("EstimateDurationMin(%v) = %v, want %v", tt.distanceKm, got, tt.want)
		}
	}
}

func TestQuoteAvailabilityWindow(t *testing.T) {
	// Tuesday 10:00 UTC.
	at := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	cfg := &models.PricingConfiguration{
		ServiceType:        models.ServiceTypeMotoTaxi,
		Region:             "recife",
		PerKilometerRate:   2,
		PerKilometerActive: true,
		Currency:           "BRL",
	}

	dayRule := &models.AvailabilityRule{
		ServiceType:     models.ServiceTypeMotoTaxi,
		Region:          "recife",
		Weekdays:        []int{1, 2, 3, 4, 5},
		TimeStart:       "06:00",
		TimeEnd:         "22:00",
		SurgeMultiplier: 1.0,
		IsActive:        true,
	}
	rushRule := &models.AvailabilityRule{
		ServiceType:     models.ServiceTypeMotoTaxi,
		Region:          "recife",
		Weekdays:        []int{2},
		TimeStart:       "09:00",
		TimeEnd:         "11:00",
		SurgeMultiplier: 1.8,
		IsActive:        true,
	}

	engine := NewEngine(&fixedProvider{cfg: cfg, rules: []*models.AvailabilityRule{dayRule, rushRule}}, testLogger(t))

	quote, err := engine.Quote(context.Background(), models.ServiceTypeMotoTaxi, "recife", 10, at)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	// Highest covering rule wins: 10km * 2 * 1.8.
	if quote.EstimatedPrice != 36.00 {
		t.Errorf("EstimatedPrice = %v, want 36.00", quote.EstimatedPrice)
	}
	if quote.SurgeMultiplier != 1.8 {
		t.Errorf("SurgeMultiplier = %v, want 1.8", quote.SurgeMultiplier)
	}
	if quote.FallbackPricing {
		t.Error("FallbackPricing = true, want false")
	}
	if quote.FormattedPrice != "R$ 36,00" {
		t.Errorf("FormattedPrice = %q, want %q", quote.FormattedPrice, "R$ 36,00")
	}

	// Sunday is outside every rule: service unavailable.
	sunday := time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC)
	if _, err := engine.Quote(context.Background(), models.ServiceTypeMotoTaxi, "recife", 10, sunday); !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("Quote on uncovered day: err = %v, want ErrServiceUnavailable", err)
	}
}

func TestQuoteWithoutRulesIsAlwaysAvailable(t *testing.T) {
	cfg := &models.PricingConfiguration{
		ServiceType:        models.ServiceTypeCar,
		Region:             "recife",
		PerKilometerRate:   3,
		PerKilometerActive: true,
	}
	engine := NewEngine(&fixedProvider{cfg: cfg}, testLogger(t))

	quote, err := engine.Quote(context.Background(), models.ServiceTypeCar, "recife", 5, time.Now())
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if quote.SurgeMultiplier != 1.0 {
		t.Errorf("SurgeMultiplier = %v, want 1.0", quote.SurgeMultiplier)
	}
	if quote.EstimatedPrice != 15.00 {
		t.Errorf("EstimatedPrice = %v, want 15.00", quote.EstimatedPrice)
	}
}

func TestQuoteProviderErrorFallsBack(t *testing.T) {
	engine := NewEngine(&fixedProvider{cfgErr: errors.New("config store down")}, testLogger(t))

	quote, err := engine.Quote(context.Background(), models.ServiceTypeMotoTaxi, "recife", 2, time.Now())
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !quote.FallbackPricing {
		t.Error("FallbackPricing = false, want true when configuration is unavailable")
	}
	if quote.EstimatedPrice != 10.00 { // 5 + 2*2.5
		t.Errorf("EstimatedPrice = %v, want 10.00", quote.EstimatedPrice)
	}
}
