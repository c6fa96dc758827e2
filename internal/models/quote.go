package models

// RideQuote is the price estimate shown to a passenger. Computed fresh
// for every request and never persisted; the ride records the price it
// was actually booked at.
type RideQuote struct {
	ServiceType          ServiceType `json:"service_type"`
	Region               string      `json:"region"`
	DistanceKm           float64     `json:"distance_km"`
	EstimatedPrice       float64     `json:"estimated_price"`
	EstimatedDurationMin int         `json:"estimated_duration_min"`
	SurgeMultiplier      float64     `json:"surge_multiplier"`
	Currency             string      `json:"currency"`
	FormattedPrice       string      `json:"formatted_price"`
	FallbackPricing      bool        `json:"fallback_pricing"`
}
