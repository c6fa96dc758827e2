package models

import (
	"testing"
	"time"
)

func TestPayoutStatusTransitions(t *testing.T) {
	allStatuses := []PayoutStatus{PayoutStatusPending, PayoutStatusApproved, PayoutStatusRejected, PayoutStatusPaid}

	allowed := map[PayoutStatus][]PayoutStatus{
		PayoutStatusPending:  {PayoutStatusApproved, PayoutStatusRejected},
		PayoutStatusApproved: {PayoutStatusPaid},
		PayoutStatusRejected: {},
		PayoutStatusPaid:     {},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("PayoutStatus %s -> %s: CanTransitionTo = %v, want %v", from, to, got, want)
			}
		}
	}

	for _, s := range allStatuses {
		terminal := s == PayoutStatusRejected || s == PayoutStatusPaid
		if s.IsTerminal() != terminal {
			t.Errorf("PayoutStatus %s: IsTerminal = %v, want %v", s, s.IsTerminal(), terminal)
		}
	}
}

func TestPayoutStatusReservation(t *testing.T) {
	if !PayoutStatusPending.ReservesBalance() || !PayoutStatusApproved.ReservesBalance() {
		t.Error("pending and approved payouts must reserve balance")
	}
	if PayoutStatusRejected.ReservesBalance() || PayoutStatusPaid.ReservesBalance() {
		t.Error("terminal payouts must release their reservation")
	}
}

func TestFeePaymentStatusTransitions(t *testing.T) {
	allStatuses := []FeePaymentStatus{FeePaymentStatusPending, FeePaymentStatusPaid, FeePaymentStatusCanceled, FeePaymentStatusExpired}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := from == FeePaymentStatusPending && to != FeePaymentStatusPending
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("FeePaymentStatus %s -> %s: CanTransitionTo = %v, want %v", from, to, got, want)
			}
		}
	}

	if !FeePaymentStatusPending.ReservesBalance() {
		t.Error("pending fee payments must reserve balance")
	}
	for _, s := range []FeePaymentStatus{FeePaymentStatusPaid, FeePaymentStatusCanceled, FeePaymentStatusExpired} {
		if s.ReservesBalance() {
			t.Errorf("FeePaymentStatus %s must not reserve balance", s)
		}
		if !s.IsTerminal() {
			t.Errorf("FeePaymentStatus %s must be terminal", s)
		}
	}
}

func TestAvailabilityRuleCovers(t *testing.T) {
	rule := &AvailabilityRule{
		Weekdays:        []int{1, 2, 3, 4, 5},
		TimeStart:       "06:00",
		TimeEnd:         "22:00",
		SurgeMultiplier: 1,
		IsActive:        true,
	}

	monday := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	if !rule.Covers(monday) {
		t.Error("Monday 10:00 should be covered")
	}

	sunday := time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC)
	if rule.Covers(sunday) {
		t.Error("Sunday should not be covered")
	}

	beforeOpen := time.Date(2025, 6, 2, 5, 59, 0, 0, time.UTC)
	if rule.Covers(beforeOpen) {
		t.Error("05:59 should not be covered")
	}

	atClose := time.Date(2025, 6, 2, 22, 0, 0, 0, time.UTC)
	if rule.Covers(atClose) {
		t.Error("end time is exclusive")
	}

	rule.IsActive = false
	if rule.Covers(monday) {
		t.Error("inactive rule must not cover anything")
	}
}
