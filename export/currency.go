package export

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders v as whole US dollars with thousands separators,
// e.g. "$1,234" or "-$56".
func FormatCurrency(v float64) string {
	dollars := int64(math.Round(v))
	if dollars < 0 {
		return "-$" + usPrinter.Sprintf("%d", -dollars)
	}
	return "$" + usPrinter.Sprintf("%d", dollars)
}
