package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCOP renders an amount as Colombian pesos the way es-CO currency
// formatting does: leading "$", dot-grouped thousands, no decimals.
// The amount is rounded to the nearest peso first.
func FormatCOP(amount decimal.Decimal) string {
	rounded := amount.Round(0)

	negative := rounded.IsNegative()
	digits := rounded.Abs().String()

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}

	return b.String()
}
