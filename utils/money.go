package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR formats an amount as a rupee string like "₹1,23,456.50" using
// Indian digit grouping (last three digits, then pairs).
func FormatINR(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	b.Grow(len(fixed) + len(intPart)/2 + 4)
	if neg {
		b.WriteString("-₹")
	} else {
		b.WriteString("₹")
	}

	if len(intPart) <= 3 {
		b.WriteString(intPart)
	} else {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]
		// Group the head in pairs from the right.
		rem := len(head) % 2
		if rem == 1 {
			b.WriteString(head[:1])
			head = head[1:]
			b.WriteByte(',')
		}
		for i := 0; i < len(head); i += 2 {
			b.WriteString(head[i : i+2])
			b.WriteByte(',')
		}
		b.WriteString(tail)
	}

	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
