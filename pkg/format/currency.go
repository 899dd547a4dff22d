// Package format provides currency string formatting.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Euro returns a currency string with a trailing euro sign and thousands
// separators (e.g., "-1.234,56 €").
func Euro(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-" + formatted + " €"
	}
	return formatted + " €"
}

// formatPositiveCurrency renders with European separators: dot for thousands,
// comma for decimals.
func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte('.')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "," + decPart
}
