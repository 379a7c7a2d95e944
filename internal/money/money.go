// Package money holds the exact decimal helpers used for currency amounts.
//
// Amounts are github.com/shopspring/decimal values end to end. Binary floating
// point never touches a price, a tax, a tip or a share.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places every emitted share is rounded to.
const Scale int32 = 2

var (
	// ErrNegative is returned by ParseAmount for amounts below zero.
	ErrNegative = errors.New("amount must not be negative")
	// ErrInvalid is returned by ParseAmount for text that is not a decimal number.
	ErrInvalid = errors.New("amount is not a valid decimal")
)

// Zero is the additive identity.
var Zero = decimal.Zero

// ParseAmount parses a user supplied amount such as "12.50" or " 3 ".
// An empty string parses to zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNegative, s)
	}
	return d, nil
}

// MustParse is ParseAmount for literals known to be valid. It panics otherwise.
func MustParse(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Sum adds amounts exactly. Sum() is zero.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// DivideRounded divides amount by n and rounds the quotient half-up (ties away
// from zero) to Scale places. The division itself is exact: the rounding is
// applied to the true quotient, not to a truncated one.
func DivideRounded(amount decimal.Decimal, n int) decimal.Decimal {
	return amount.DivRound(decimal.NewFromInt(int64(n)), Scale)
}

// Split divides amount into n equal shares at Scale places and returns the
// share together with the remainder amount − share·n. Adding the remainder to
// exactly one recipient makes the shares sum back to amount.
func Split(amount decimal.Decimal, n int) (share, remainder decimal.Decimal) {
	share = DivideRounded(amount, n)
	remainder = amount.Sub(share.Mul(decimal.NewFromInt(int64(n))))
	return share, remainder
}

// String renders amount at Scale places without a currency symbol.
func String(amount decimal.Decimal) string {
	return amount.StringFixed(Scale)
}

// Format concatenates symbol and amount rendered at two decimal places.
// There is no grouping; negative amounts keep the plain minus prefix after the
// symbol ("$-1.50").
func Format(amount decimal.Decimal, symbol string) string {
	return symbol + String(amount)
}
