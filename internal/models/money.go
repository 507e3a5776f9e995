package models

import "github.com/shopspring/decimal"

// ToMoney quantizes a value to 2 fractional digits, rounding half-up.
// Every derived amount and balance passes through here so repeated
// operations can never accumulate sub-cent drift.
func ToMoney(d decimal.Decimal) decimal.Decimal {
	// decimal.Round rounds half away from zero, which is half-up for the
	// non-negative values money takes in this system.
	return d.Round(2)
}

// FormatMoney renders a value with exactly 2 fractional digits, the
// serialization used in every persisted file.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
