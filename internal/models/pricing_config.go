package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceFeeType string

const (
	ServiceFeeTypeFixed   ServiceFeeType = "fixed"
	ServiceFeeTypePercent ServiceFeeType = "percent"
)

func (t ServiceFeeType) IsValid() bool {
	return t == ServiceFeeTypeFixed || t == ServiceFeeTypePercent
}

// PricingConfiguration is the admin-managed pricing rule for one service
// type in one region. A ride stores its own computed price, never a
// reference back to the configuration, so editing a configuration never
// rewrites history.
type PricingConfiguration struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ServiceType        ServiceType        `json:"service_type" bson:"service_type" validate:"required"`
	Region             string             `json:"region" bson:"region" validate:"required"`
	PerKilometerRate   float64            `json:"per_kilometer_rate" bson:"per_kilometer_rate"`
	PerKilometerActive bool               `json:"per_kilometer_active" bson:"per_kilometer_active"`
	FixedPrice         *float64           `json:"fixed_price" bson:"fixed_price"`
	FixedPriceActive   bool               `json:"fixed_price_active" bson:"fixed_price_active"`
	ServiceFeeType     ServiceFeeType     `json:"service_fee_type" bson:"service_fee_type" default:"percent"`
	ServiceFeeValue    float64            `json:"service_fee_value" bson:"service_fee_value"`
	Currency           string             `json:"currency" bson:"currency" default:"BRL"`
	IsActive           bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

// HasActiveRule reports whether any pricing rule is usable. A
// configuration with neither rule active still quotes through the
// fallback formula, but that state is an admin data-entry gap.
func (c *PricingConfiguration) HasActiveRule() bool {
	if c.FixedPriceActive && c.FixedPrice != nil {
		return true
	}
	return c.PerKilometerActive
}
