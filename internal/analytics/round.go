// Package analytics derives reporting views from holdings and performance
// history. Every function is pure: inputs are never mutated and results
// depend only on the arguments.
//
// All reported figures are rounded with Round, which rounds half away from
// zero to two decimal places. Intermediate sums are kept at full precision
// and rounded once, at the point a figure is reported. Allocation
// percentages are the exception: they are apportioned so a dimension always
// sums to 100.
package analytics

import "github.com/shopspring/decimal"

// Precision is the number of decimal places carried by reported figures
const Precision int32 = 2

var hundred = decimal.NewFromInt(100)

// Round applies the reporting rounding rule (half away from zero, two places)
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// percentOf returns part/whole*100, or zero when whole is zero
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
