package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rupiah is a whole-rupiah amount. The currency has no minor unit in use, so
// all arithmetic stays on int64 and decimal is only involved for display.
type Rupiah int64

// Decimal returns the amount as a decimal value.
func (r Rupiah) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(r))
}

// Display renders the amount the way the storefront prints prices, e.g. "Rp50.000".
func (r Rupiah) Display() string {
	d := r.Decimal()
	digits := d.Abs().Truncate(0).String()

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := "Rp" + strings.Join(groups, ".")
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}
