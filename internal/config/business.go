package config

// BusinessConfig carries the money rules that are policy, not code:
// the default withdrawal fee, the mandatory fee rule for new drivers,
// and the fee-request deadline window.
type BusinessConfig struct {
	WithdrawalFeeType  string  `yaml:"withdrawal_fee_type"`
	WithdrawalFeeValue float64 `yaml:"withdrawal_fee_value"`
	FeeDeadlineDays    int     `yaml:"fee_deadline_days"`
}

func loadBusinessConfig() *BusinessConfig {
	return &BusinessConfig{
		WithdrawalFeeType:  getEnv("WITHDRAWAL_FEE_TYPE", "percent"),
		WithdrawalFeeValue: getEnvAsFloat64("WITHDRAWAL_FEE_VALUE", 10.0),
		FeeDeadlineDays:    getEnvAsInt("FEE_DEADLINE_DAYS", 2),
	}
}
