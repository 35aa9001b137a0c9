package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an amount as the glyph followed by the value rounded
// to the nearest rupee with thousands separators, e.g. "₹123,450".
func FormatCurrency(glyph string, v decimal.Decimal) string {
	return currencyPrinter.Sprintf("%s%d", glyph, v.Round(0).IntPart())
}
