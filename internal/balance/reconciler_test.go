package balance

import (
	"math/rand"
	"testing"
	"time"

	"motora/internal/fees"
	"motora/internal/models"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		snapshot      models.BalanceSnapshot
		wantTotal     float64
		wantReserved  float64
		wantAvailable float64
	}{
		{
			name: "earnings minus paid payouts minus reservations",
			snapshot: models.BalanceSnapshot{
				CompletedRideAmounts: []float64{40, 25.5, 12},
				PaidPayoutAmounts:    []float64{20},
				ReservedAmounts:      []float64{15, 5},
			},
			wantTotal:     57.50,
			wantReserved:  20.00,
			wantAvailable: 37.50,
		},
		{
			name:          "empty ledgers",
			snapshot:      models.BalanceSnapshot{},
			wantTotal:     0,
			wantReserved:  0,
			wantAvailable: 0,
		},
		{
			name: "payouts exceeding earnings floor at zero",
			snapshot: models.BalanceSnapshot{
				CompletedRideAmounts: []float64{10},
				PaidPayoutAmounts:    []float64{25},
			},
			wantTotal:     0,
			wantReserved:  0,
			wantAvailable: 0,
		},
		{
			name: "reservations exceeding earnings floor available at zero",
			snapshot: models.BalanceSnapshot{
				CompletedRideAmounts: []float64{30},
				ReservedAmounts:      []float64{50},
			},
			wantTotal:     30.00,
			wantReserved:  50.00,
			wantAvailable: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.snapshot)
			if got.TotalEarnings != tt.wantTotal {
				t.Errorf("TotalEarnings = %v, want %v", got.TotalEarnings, tt.wantTotal)
			}
			if got.Reserved != tt.wantReserved {
				t.Errorf("Reserved = %v, want %v", got.Reserved, tt.wantReserved)
			}
			if got.Available != tt.wantAvailable {
				t.Errorf("Available = %v, want %v", got.Available, tt.wantAvailable)
			}
			if got.Available < 0 || got.Reserved < 0 {
				t.Error("balance components must never be negative")
			}
		})
	}
}

func TestComputeIsPermutationInvariant(t *testing.T) {
	rides := []float64{40.1, 12.34, 99.9, 7, 0.01, 55.55}
	paid := []float64{20, 13.37, 5}
	reserved := []float64{9.99, 4.2, 11}

	want := Compute(models.BalanceSnapshot{
		CompletedRideAmounts: rides,
		PaidPayoutAmounts:    paid,
		ReservedAmounts:      reserved,
	})

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := models.BalanceSnapshot{
			CompletedRideAmounts: append([]float64(nil), rides...),
			PaidPayoutAmounts:    append([]float64(nil), paid...),
			ReservedAmounts:      append([]float64(nil), reserved...),
		}
		rng.Shuffle(len(shuffled.CompletedRideAmounts), func(a, b int) {
			shuffled.CompletedRideAmounts[a], shuffled.CompletedRideAmounts[b] = shuffled.CompletedRideAmounts[b], shuffled.CompletedRideAmounts[a]
		})
		rng.Shuffle(len(shuffled.PaidPayoutAmounts), func(a, b int) {
			shuffled.PaidPayoutAmounts[a], shuffled.PaidPayoutAmounts[b] = shuffled.PaidPayoutAmounts[b], shuffled.PaidPayoutAmounts[a]
		})
		rng.Shuffle(len(shuffled.ReservedAmounts), func(a, b int) {
			shuffled.ReservedAmounts[a], shuffled.ReservedAmounts[b] = shuffled.ReservedAmounts[b], shuffled.ReservedAmounts[a]
		})

		got := Compute(shuffled)
		if got.TotalEarnings != want.TotalEarnings || got.Reserved != want.Reserved || got.Available != want.Available {
			t.Fatalf("permutation %d changed the balance: got %+v, want %+v", i, got, want)
		}
	}
}

func TestCanRequestWithdrawal(t *testing.T) {
	percent10 := fees.Config{Type: models.ServiceFeeTypePercent, Value: 10}

	tests := []struct {
		name        string
		available   float64
		requested   float64
		cfg         fees.Config
		wantAllowed bool
		wantNet     float64
		wantReason  WithdrawalReason
	}{
		{
			name:        "full balance withdrawal with percent fee",
			available:   40,
			requested:   40,
			cfg:         percent10,
			wantAllowed: true,
			wantNet:     36.00,
		},
		{
			name:       "requested above available",
			available:  30,
			requested:  31,
			cfg:        percent10,
			wantNet:    27.90,
			wantReason: ReasonInsufficientBalance,
		},
		{
			name:       "net below minimum is its own reason",
			available:  50,
			requested:  50,
			cfg:        fees.Config{Type: models.ServiceFeeTypeFixed, Value: 42},
			wantNet:    8.00,
			wantReason: ReasonBelowMinimumNet,
		},
		{
			name:        "net exactly at minimum is allowed",
			available:   50,
			requested:   50,
			cfg:         fees.Config{Type: models.ServiceFeeTypeFixed, Value: 40},
			wantAllowed: true,
			wantNet:     10.00,
		},
		{
			name:       "both constraints failing reports insufficient balance",
			available:  5,
			requested:  50,
			cfg:        fees.Config{Type: models.ServiceFeeTypeFixed, Value: 45},
			wantNet:    5.00,
			wantReason: ReasonInsufficientBalance,
		},
		{
			name:       "zero request is below minimum",
			available:  100,
			requested:  0,
			cfg:        percent10,
			wantNet:    0,
			wantReason: ReasonBelowMinimumNet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanRequestWithdrawal(tt.available, tt.requested, tt.cfg)
			if got.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", got.Allowed, tt.wantAllowed)
			}
			if got.NetAmount != tt.wantNet {
				t.Errorf("NetAmount = %v, want %v", got.NetAmount, tt.wantNet)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestFeeRequestEligibility(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		registeredAt  time.Time
		hasActive     bool
		deadlineDays  int
		wantCan       bool
		wantRemaining int
		wantExpired   bool
		wantReason    FeeIneligibilityReason
	}{
		{
			name:          "registered today",
			registeredAt:  now.Add(-2 * time.Hour),
			deadlineDays:  2,
			wantCan:       true,
			wantRemaining: 2,
		},
		{
			name:          "last day is inclusive",
			registeredAt:  now.AddDate(0, 0, -2),
			deadlineDays:  2,
			wantCan:       true,
			wantRemaining: 0,
		},
		{
			name:          "expired one day past deadline",
			registeredAt:  now.AddDate(0, 0, -3),
			deadlineDays:  2,
			wantRemaining: 0,
			wantExpired:   true,
			wantReason:    ReasonDeadlineExpired,
		},
		{
			name:          "active request blocks even inside the window",
			registeredAt:  now.AddDate(0, 0, -1),
			hasActive:     true,
			deadlineDays:  2,
			wantRemaining: 1,
			wantReason:    ReasonActiveFeeRequest,
		},
		{
			name:          "non-positive deadline falls back to default",
			registeredAt:  now.AddDate(0, 0, -1),
			deadlineDays:  0,
			wantCan:       true,
			wantRemaining: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FeeRequestEligibility(tt.registeredAt, now, tt.hasActive, tt.deadlineDays)
			if got.CanRequest != tt.wantCan {
				t.Errorf("CanRequest = %v, want %v", got.CanRequest, tt.wantCan)
			}
			if got.DaysRemaining != tt.wantRemaining {
				t.Errorf("DaysRemaining = %v, want %v", got.DaysRemaining, tt.wantRemaining)
			}
			if got.Expired != tt.wantExpired {
				t.Errorf("Expired = %v, want %v", got.Expired, tt.wantExpired)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

// The end-to-end scenario from the driver earnings screen: one
// completed R$ 40 ride, no payouts, full withdrawal under a 10% fee.
func TestWithdrawalScenarioEndToEnd(t *testing.T) {
	bal := Compute(models.BalanceSnapshot{
		CompletedRideAmounts: []float64{40.00},
	})
	if bal.Available != 40.00 {
		t.Fatalf("Available = %v, want 40.00", bal.Available)
	}

	decision := CanRequestWithdrawal(bal.Available, 40.00, fees.Config{
		Type:  models.ServiceFeeTypePercent,
		Value: 10,
	})
	if !decision.Allowed {
		t.Fatalf("decision not allowed: %+v", decision)
	}
	if decision.ChargedAmount != 4.00 {
		t.Errorf("ChargedAmount = %v, want 4.00", decision.ChargedAmount)
	}
	if decision.NetAmount != 36.00 {
		t.Errorf("NetAmount = %v, want 36.00", decision.NetAmount)
	}
}
