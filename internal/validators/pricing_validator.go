package validators

import (
	"motora/internal/models"
	"motora/internal/utils"
)

// CreatePricingConfigRequest is the admin payload for a new pricing
// configuration. Rule activation flags are plain booleans; which rule
// wins is decided by the pricing engine's precedence, not here.
type CreatePricingConfigRequest struct {
	ServiceType        string   `json:"service_type" validate:"required,service_type"`
	Region             string   `json:"region" validate:"required,min=2,max=100"`
	PerKilometerRate   float64  `json:"per_kilometer_rate" validate:"omitempty,min=0"`
	PerKilometerActive bool     `json:"per_kilometer_active"`
	FixedPrice         *float64 `json:"fixed_price" validate:"omitempty,amount"`
	FixedPriceActive   bool     `json:"fixed_price_active"`
	ServiceFeeType     string   `json:"service_fee_type" validate:"omitempty,fee_type"`
	ServiceFeeValue    float64  `json:"service_fee_value" validate:"omitempty,min=0"`
	IsActive           *bool    `json:"is_active"`
}

type UpdatePricingConfigRequest struct {
	PerKilometerRate   *float64 `json:"per_kilometer_rate" validate:"omitempty,min=0"`
	PerKilometerActive *bool    `json:"per_kilometer_active"`
	FixedPrice         *float64 `json:"fixed_price" validate:"omitempty,amount"`
	FixedPriceActive   *bool    `json:"fixed_price_active"`
	ServiceFeeType     *string  `json:"service_fee_type" validate:"omitempty,fee_type"`
	ServiceFeeValue    *float64 `json:"service_fee_value" validate:"omitempty,min=0"`
	IsActive           *bool    `json:"is_active"`
}

// ValidatePricingConfiguration checks model-level constraints the
// struct tags cannot express.
func ValidatePricingConfiguration(config *models.PricingConfiguration) ValidationErrors {
	var errs ValidationErrors

	if !config.ServiceType.IsValid() {
		errs = append(errs, ValidationError{
			Field: "service_type", Tag: "service_type",
			Value: string(config.ServiceType), Message: "Unknown service type",
		})
	}
	if config.Region == "" {
		errs = append(errs, ValidationError{
			Field: "region", Tag: "required", Message: "region is required",
		})
	}
	if config.FixedPriceActive && (config.FixedPrice == nil || *config.FixedPrice <= 0) {
		errs = append(errs, ValidationError{
			Field: "fixed_price", Tag: "amount",
			Message: "fixed_price must be a positive amount when fixed pricing is active",
		})
	}
	if config.PerKilometerActive && config.PerKilometerRate <= 0 {
		errs = append(errs, ValidationError{
			Field: "per_kilometer_rate", Tag: "amount",
			Message: "per_kilometer_rate must be positive when per-kilometer pricing is active",
		})
	}
	if config.ServiceFeeType != "" && !config.ServiceFeeType.IsValid() {
		errs = append(errs, ValidationError{
			Field: "service_fee_type", Tag: "fee_type",
			Value: string(config.ServiceFeeType), Message: "Fee type must be fixed or percent",
		})
	}
	if config.ServiceFeeType == models.ServiceFeeTypePercent && (config.ServiceFeeValue < 0 || config.ServiceFeeValue > 100) {
		errs = append(errs, ValidationError{
			Field: "service_fee_value", Tag: "max",
			Message: "percent fee value must be between 0 and 100",
		})
	}
	if config.ServiceFeeValue < 0 {
		errs = append(errs, ValidationError{
			Field: "service_fee_value", Tag: "min",
			Message: "service_fee_value cannot be negative",
		})
	}
	if config.Currency != "" && config.Currency != utils.DefaultCurrency {
		errs = append(errs, ValidationError{
			Field: "currency", Tag: "currency",
			Value: config.Currency, Message: "Only BRL is supported",
		})
	}

	return errs
}
