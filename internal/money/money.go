// Package money holds the rounding and display rules shared by every
// computed figure on a document.
package money

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Hundred is 100 as a decimal, used for percent and satang conversions.
var Hundred = decimal.NewFromInt(100)

// Round2 rounds x to 2 decimal places, half away from zero.
func Round2(x decimal.Decimal) decimal.Decimal {
	return x.Round(2)
}

// Format renders x with thousands separators and exactly decimals fraction
// digits: Format(-1234.5, 2) -> "-1,234.50".
func Format(x decimal.Decimal, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	rounded := x.Round(int32(decimals))
	abs := rounded.Abs()

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(humanize.BigComma(abs.Truncate(0).BigInt()))
	if decimals > 0 {
		fixed := abs.StringFixed(int32(decimals))
		b.WriteString(fixed[strings.IndexByte(fixed, '.'):])
	}
	return b.String()
}

// Format2 is Format with two fraction digits.
func Format2(x decimal.Decimal) string {
	return Format(x, 2)
}

// Percent returns pct percent of base (pct is on a 0-100 scale).
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(Hundred)
}
