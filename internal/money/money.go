// Package money formats whole-rupiah amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// Rupiah renders n with Indonesian digit grouping, e.g. "Rp 140.970".
func Rupiah(n int64) string {
	if n < 0 {
		return "-Rp " + printer.Sprintf("%d", -n)
	}

	return "Rp " + printer.Sprintf("%d", n)
}

// Number renders n with Indonesian digit grouping and no currency.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}
