package portfolio

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatUSD renders whole dollars with thousands separators, e.g. "$16,850"
// or "-$200".
func FormatUSD(n int) string {
	if n < 0 {
		return printer.Sprintf("-$%d", -n)
	}
	return printer.Sprintf("$%d", n)
}

// FormatSigned is FormatUSD with an explicit "+" for positive amounts.
func FormatSigned(n int) string {
	if n > 0 {
		return "+" + FormatUSD(n)
	}
	return FormatUSD(n)
}
