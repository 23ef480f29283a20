package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a balance for display: fixed two decimal places,
// thousands grouping, and parentheses instead of a minus sign for negative
// values. Example: -1234567.5 -> "(1,234,567.50)".
func FormatAmount(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	formatted := groupThousands(intPart) + "." + fracPart

	if negative {
		return "(" + formatted + ")"
	}
	return formatted
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
