// Package balance derives a driver's financial position from the raw
// ride and request ledgers. Nothing here is persisted: a balance is a
// snapshot, valid only for the point-in-time read it was derived from.
package balance

import (
	"time"

	"motora/internal/fees"
	"motora/internal/models"
	"motora/internal/utils"
)

type WithdrawalReason string

const (
	ReasonInsufficientBalance WithdrawalReason = "insufficient_balance"
	ReasonBelowMinimumNet     WithdrawalReason = "below_minimum_net"
)

type FeeIneligibilityReason string

const (
	ReasonActiveFeeRequest FeeIneligibilityReason = "active_request_exists"
	ReasonDeadlineExpired  FeeIneligibilityReason = "deadline_expired"
)

// WithdrawalDecision is a structured eligibility result, not an error:
// rejections are expected, frequent outcomes the UI surfaces verbatim.
type WithdrawalDecision struct {
	Allowed       bool             `json:"allowed"`
	ChargedAmount float64          `json:"charged_amount"`
	NetAmount     float64          `json:"net_amount"`
	Reason        WithdrawalReason `json:"reason,omitempty"`
}

// FeeEligibility reports whether a driver may open a fee-payment
// request. DaysRemaining is floored at zero for display; Expired
// carries the true expiry so the floor never leaks into the decision.
type FeeEligibility struct {
	CanRequest    bool                   `json:"can_request"`
	DaysRemaining int                    `json:"days_remaining"`
	Expired       bool                   `json:"expired"`
	Reason        FeeIneligibilityReason `json:"reason,omitempty"`
}

// Compute folds a snapshot into a balance. Sums are commutative, so
// the result is independent of list order. Every derived figure is
// floored at zero: a ledger inconsistency must not surface as a
// negative balance.
func Compute(snapshot models.BalanceSnapshot) models.DriverBalance {
	total := utils.SumAmounts(snapshot.CompletedRideAmounts) - utils.SumAmounts(snapshot.PaidPayoutAmounts)
	if total < 0 {
		total = 0
	}

	reserved := utils.SumAmounts(snapshot.ReservedAmounts)
	if reserved < 0 {
		reserved = 0
	}

	available := total - reserved
	if available < 0 {
		available = 0
	}

	return models.DriverBalance{
		TotalEarnings: utils.RoundCurrency(total),
		Reserved:      utils.RoundCurrency(reserved),
		Available:     utils.RoundCurrency(available),
		Currency:      utils.DefaultCurrency,
		ComputedAt:    time.Now(),
	}
}

// CanRequestWithdrawal decides whether a withdrawal of requestedAmount
// fits the available balance and, after the service fee, still clears
// the minimum net payout. The two failure modes carry distinct
// reasons; when both apply, insufficient balance wins, because the
// driver cannot fix the net amount without covering the request first.
func CanRequestWithdrawal(available, requestedAmount float64, feeCfg fees.Config) WithdrawalDecision {
	if requestedAmount < 0 {
		requestedAmount = 0
	}
	if available < 0 {
		available = 0
	}

	breakdown := fees.Calculate(feeCfg, requestedAmount)

	decision := WithdrawalDecision{
		ChargedAmount: breakdown.ChargedAmount,
		NetAmount:     breakdown.NetAmount,
	}

	switch {
	case requestedAmount > available:
		decision.Reason = ReasonInsufficientBalance
	case breakdown.NetAmount < utils.MinimumNetWithdrawal:
		decision.Reason = ReasonBelowMinimumNet
	default:
		decision.Allowed = true
	}

	return decision
}

// FeeRequestEligibility applies the fee-request deadline window. The
// window is counted in whole days from registration; the last day is
// inclusive (daysRemaining == 0 still allows a request).
func FeeRequestEligibility(registeredAt, now time.Time, hasActiveFeeRequest bool, deadlineDays int) FeeEligibility {
	if deadlineDays <= 0 {
		deadlineDays = utils.DefaultFeeDeadlineDays
	}

	remaining := deadlineDays - utils.WholeDaysBetween(registeredAt, now)
	expired := remaining < 0

	eligibility := FeeEligibility{
		DaysRemaining: remaining,
		Expired:       expired,
	}
	if eligibility.DaysRemaining < 0 {
		eligibility.DaysRemaining = 0
	}

	switch {
	case hasActiveFeeRequest:
		eligibility.Reason = ReasonActiveFeeRequest
	case expired:
		eligibility.Reason = ReasonDeadlineExpired
	default:
		eligibility.CanRequest = true
	}

	return eligibility
}
