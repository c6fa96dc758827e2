package utils

import (
	"fmt"
	"math"
	"strings"
)

// RoundCurrency rounds to two decimal places using half-up rounding,
// the convention for displayed BRL amounts. Applied once at the point
// of charge, never at intermediate steps.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatBRL renders an amount in Brazilian Real display format:
// R$ 1.234,56 (dot thousands separator, comma decimal separator).
func FormatBRL(amount float64) string {
	amount = RoundCurrency(amount)

	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	formatted := fmt.Sprintf("R$ %s,%02d", strings.Join(groups, "."), frac)
	if negative {
		return "-" + formatted
	}
	return formatted
}

// CentsToAmount converts an integer amount in centavos to base
// currency units. Negotiation offers arrive in cents and must be
// converted before entering any pricing or fee computation.
func CentsToAmount(cents int64) float64 {
	return float64(cents) / 100
}

// AmountToCents converts base currency units to centavos, rounding
// half-up. Used at the payout gateway boundary.
func AmountToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// SumAmounts adds a list of currency amounts. Addition is commutative,
// so the result is independent of list order.
func SumAmounts(amounts []float64) float64 {
	var total float64
	for _, a := range amounts {
		total += a
	}
	return total
}
