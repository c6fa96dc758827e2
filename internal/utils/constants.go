package utils

// Application Constants
const (
	AppName    = "Motora"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage = "pt-BR"
	DefaultCurrency = "BRL"
	DefaultTimeZone = "America/Sao_Paulo"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Pricing
	// Fallback used when neither the fixed-price nor the per-kilometer
	// rule is active for a service type. Quoting must never come back
	// empty, so a misconfigured service type degenerates to this and
	// the quote is logged as a fallback.
	FallbackBaseFare     = 5.0
	FallbackPerKilometer = 2.5
	MinSurgeMultiplier   = 1.0
	MaxSurgeMultiplier   = 5.0
	AverageSpeedKmh      = 30.0
	MaxQuoteDistanceKm   = 500.0

	// Settlement
	MinimumNetWithdrawal   = 10.0
	DefaultFeeDeadlineDays = 2

	// Rate Limiting
	DefaultRateLimit = 100
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
)

// User types carried in JWT claims.
const (
	UserTypeRider  = "rider"
	UserTypeDriver = "driver"
	UserTypeAdmin  = "admin"
)
