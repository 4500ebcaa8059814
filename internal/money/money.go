// Package money represents currency amounts as integer minor units (cents).
//
// Amounts are only converted to decimal text at display and input boundaries.
// Arithmetic and comparisons always happen on the integer value.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in cents. Gross and deduction amounts are non-negative;
// net cash flow may be negative.
type Money int64

// Zero is the zero amount.
const Zero Money = 0

var half = decimal.New(5, -1)

// FromCents wraps a raw cent count.
func FromCents(cents int64) Money {
	return Money(cents)
}

// Parse converts a decimal display string such as "1,520.00", "$73.3" or
// "-12.345" into cents. Digits beyond the cents place are rounded half-up.
func Parse(s string) (Money, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return Zero, fmt.Errorf("money: empty amount")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Zero, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDecimal converts a decimal amount in currency units to cents, rounding
// half-up at the cents boundary.
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Shift(2).Add(half).Floor().IntPart())
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// Cents returns the raw cent count.
func (m Money) Cents() int64 {
	return int64(m)
}

// String formats the amount with exactly two decimal places, e.g. "1520.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Add returns m + o.
func (m Money) Add(o Money) Money { return m + o }

// Sub returns m - o.
func (m Money) Sub(o Money) Money { return m - o }

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool { return m > 0 }

// Sum adds up amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}

// Percent returns part / whole * 100, or 0 when whole is not positive.
func Percent(part, whole Money) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
