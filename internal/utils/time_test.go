package utils

import (
	"testing"
	"time"
)

func TestWholeDaysBetween(t *testing.T) {
	base := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same instant", base, base, 0},
		{"same day different hours", base.Add(-13 * time.Hour), base.Add(9 * time.Hour), 0},
		{"exactly two days", base.AddDate(0, 0, -2), base, 2},
		{"two days minus an hour still two calendar days", base.AddDate(0, 0, -2).Add(time.Hour), base, 2},
		{"reversed order is negative", base, base.AddDate(0, 0, -3), -3},
		{"month boundary", time.Date(2025, 5, 30, 23, 0, 0, 0, time.UTC), time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WholeDaysBetween(tt.from, tt.to); got != tt.want {
				t.Errorf("WholeDaysBetween() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWholeDaysBetweenAcrossSpringForward(t *testing.T) {
	// Sao Paulo DST started 2017-10-15: midnight jumped to 01:00, so
	// Oct 14 -> Oct 16 spans only 47 elapsed hours but 2 calendar days.
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	from := time.Date(2017, 10, 14, 10, 0, 0, 0, loc)
	to := time.Date(2017, 10, 16, 10, 0, 0, 0, loc)

	if got := WholeDaysBetween(from, to); got != 2 {
		t.Errorf("WholeDaysBetween() = %v, want 2 across the 23-hour day", got)
	}
}

func TestValidateClockRange(t *testing.T) {
	if err := ValidateClockRange("06:00", "22:00"); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := ValidateClockRange("22:00", "06:00"); err == nil {
		t.Error("inverted range accepted")
	}
	if err := ValidateClockRange("09:00", "09:00"); err == nil {
		t.Error("empty range accepted")
	}
	if err := ValidateClockRange("25:00", "26:00"); err == nil {
		t.Error("invalid clock string accepted")
	}
}
