package models

import "time"

// DriverBalance is derived on demand from the ride and request ledgers,
// never stored. TotalEarnings counts completed rides minus paid
// payouts; Reserved counts amounts held by pending/approved requests;
// Available is what the driver can still withdraw.
type DriverBalance struct {
	TotalEarnings float64   `json:"total_earnings"`
	Reserved      float64   `json:"reserved"`
	Available     float64   `json:"available"`
	Currency      string    `json:"currency"`
	ComputedAt    time.Time `json:"computed_at"`
}

// BalanceSnapshot carries the raw amounts a balance is derived from.
// All three lists must come from the same point-in-time read; mixing
// reads from different instants can double-count or miss a request
// that changed status in between.
type BalanceSnapshot struct {
	CompletedRideAmounts []float64
	PaidPayoutAmounts    []float64
	ReservedAmounts      []float64
}
