package config

import (
	"time"
)

// PayoutConfig configures the money movement provider used to execute
// approved driver payouts.
type PayoutConfig struct {
	Provider      string        `yaml:"provider"`
	StripeKey     string        `yaml:"stripe_key"`
	StripeTimeout time.Duration `yaml:"stripe_timeout"`
	Currency      string        `yaml:"currency"`
}

func loadPayoutConfig() *PayoutConfig {
	return &PayoutConfig{
		Provider:      getEnv("PAYOUT_PROVIDER", "stripe"),
		StripeKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeTimeout: getEnvAsDuration("STRIPE_TIMEOUT", 30*time.Second),
		Currency:      getEnv("PAYOUT_CURRENCY", "brl"),
	}
}
