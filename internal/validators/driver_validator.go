package validators

// WithdrawalRequest is the driver payload for a payout request.
// ServiceType/Region are optional; when present they select the
// service-specific fee configuration instead of the platform default.
type WithdrawalRequest struct {
	Amount      float64 `json:"amount" validate:"required,amount"`
	ServiceType string  `json:"service_type" validate:"omitempty,service_type"`
	Region      string  `json:"region" validate:"omitempty,min=2,max=100"`
}

// FeePaymentRequest opens a mandatory service-fee payment. The
// registration date comes from the identity provider's profile, which
// this service does not store.
type FeePaymentRequest struct {
	RegisteredAt string `json:"registered_at" validate:"required"`
}

type RejectPayoutRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=255"`
}

type ExecutePayoutRequest struct {
	DestinationAccount string `json:"destination_account" validate:"required,min=3,max=255"`
}

type RecordRideRequest struct {
	DriverID        string  `json:"driver_id" validate:"required,object_id"`
	RiderID         string  `json:"rider_id" validate:"required,object_id"`
	ServiceType     string  `json:"service_type" validate:"required,service_type"`
	Region          string  `json:"region" validate:"omitempty,min=2,max=100"`
	DistanceKm      float64 `json:"distance_km" validate:"omitempty,distance"`
	SurgeMultiplier float64 `json:"surge_multiplier" validate:"omitempty,surge"`
}

type CompleteRideRequest struct {
	FinalPrice float64 `json:"final_price" validate:"required,amount"`
}
