package utils

import "testing"

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 5,00"},
		{36, "R$ 36,00"},
		{1234.56, "R$ 1.234,56"},
		{1234567.8, "R$ 1.234.567,80"},
		{0.1, "R$ 0,10"},
		{999.995, "R$ 1.000,00"},
		{-42.5, "-R$ 42,50"},
	}

	for _, tt := range tests {
		if got := FormatBRL(tt.amount); got != tt.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   float64
	}{
		{0.125, 0.13},
		{1.004, 1.00},
		{2.675, 2.68},
		{10, 10},
		{-0.125, -0.13},
	}

	for _, tt := range tests {
		if got := RoundCurrency(tt.amount); got != tt.want {
			t.Errorf("RoundCurrency(%v) = %v, want %v", tt.amount, got, tt.want)
		}
	}
}

func TestCentsConversion(t *testing.T) {
	if got := CentsToAmount(123456); got != 1234.56 {
		t.Errorf("CentsToAmount(123456) = %v, want 1234.56", got)
	}
	if got := AmountToCents(1234.56); got != 123456 {
		t.Errorf("AmountToCents(1234.56) = %v, want 123456", got)
	}
	if got := AmountToCents(CentsToAmount(4000)); got != 4000 {
		t.Errorf("round trip of 4000 cents = %v", got)
	}
}

func TestSumAmountsOrderIndependent(t *testing.T) {
	forward := SumAmounts([]float64{1.1, 2.2, 3.3})
	backward := SumAmounts([]float64{3.3, 2.2, 1.1})
	if RoundCurrency(forward) != RoundCurrency(backward) {
		t.Errorf("sum depends on order: %v vs %v", forward, backward)
	}
	if SumAmounts(nil) != 0 {
		t.Error("SumAmounts(nil) != 0")
	}
}
