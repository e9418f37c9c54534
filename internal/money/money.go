// Package money formats rupiah amounts the way the dashboard displays
// them everywhere: id-ID digit grouping, no fraction digits.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount like "Rp50.000". Fractions are rounded
// away; amounts are whole rupiah upstream.
func FormatIDR(amount float64) string {
	return printer.Sprintf("Rp%v", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// FormatSigned prefixes income with "+" and expenses with "-" around
// the absolute formatted amount.
func FormatSigned(amount float64, expense bool) string {
	abs := amount
	if abs < 0 {
		abs = -abs
	}

	sign := "+"
	if expense {
		sign = "-"
	}

	return sign + FormatIDR(abs)
}
