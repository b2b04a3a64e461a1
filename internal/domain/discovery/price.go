package discovery

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"targ/internal/domain/entity"
)

var printer = message.NewPrinter(language.Romanian)

// FormatPrice renders a price the way buyers read it: Romanian digit grouping, decimals
// only when the price has a fractional part.
func FormatPrice(price float64, currency entity.Currency) string {
	var amount string
	if price == math.Trunc(price) {
		amount = printer.Sprintf("%d", int64(price))
	} else {
		amount = printer.Sprintf("%.2f", price)
	}

	switch currency {
	case entity.CurrencyEUR:
		return amount + " €"
	case entity.CurrencyRON:
		return amount + " lei"
	default:
		return amount
	}
}
