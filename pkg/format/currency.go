// Package format renders amounts the way Brazilian real-estate documents do.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	currencySymbol     = "R$"
	thousandsSeparator = "."
	decimalSeparator   = ","
)

// Currency returns a currency string with the real symbol and thousands separators (e.g., "-R$ 1.234,56").
func Currency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	formatted := formatPositive(d.Abs(), 2)
	if d.IsNegative() {
		return "-" + currencySymbol + " " + formatted
	}
	return currencySymbol + " " + formatted
}

// Percent formats a value already expressed in percent with two decimals (e.g., "12,50%").
func Percent(value float64) string {
	d := decimal.NewFromFloat(value).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + formatPositive(d.Abs(), 2) + "%"
}

func formatPositive(value decimal.Decimal, places int32) string {
	formatted := value.StringFixed(places)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := strings.Repeat("0", int(places))
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteString(thousandsSeparator)
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + decimalSeparator + decPart
}
