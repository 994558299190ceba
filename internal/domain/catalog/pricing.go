// internal/domain/catalog/pricing.go
package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Supported currencies and the country that switches between them.
const (
	CurrencyMXN = "MXN"
	CurrencyCOP = "COP"

	CountryColombia = "Colombia"
)

// Colombian list prices. Every product sells at the flat price except
// the oil, which has its own.
const (
	colombiaFlatPrice int64 = 77350
	colombiaOilPrice  int64 = 59400

	oilProductID uint = 3
)

// CurrencyFor returns the currency for a resolved country. Anything
// other than Colombia, including an empty country from a failed or
// absent referral, sells in MXN.
func CurrencyFor(country string) string {
	if country == CountryColombia {
		return CurrencyCOP
	}
	return CurrencyMXN
}

// PriceFor resolves the unit price of a product for a country. Colombia
// overrides the stored price entirely; other countries use it as is.
func PriceFor(productID uint, basePrice int64, country string) int64 {
	if country != CountryColombia {
		return basePrice
	}
	if productID == oilProductID {
		return colombiaOilPrice
	}
	return colombiaFlatPrice
}

var esPrinter = message.NewPrinter(language.Spanish)

// FormatAmount renders a whole-unit amount with no decimals and "."
// as the thousands separator, e.g. 77350 -> "77.350".
func FormatAmount(amount int64) string {
	return esPrinter.Sprintf("%d", amount)
}

// Priced resolves a product's price and display string for a country.
func Priced(p Product, country string) PricedProduct {
	price := PriceFor(p.ID, p.Price, country)
	return PricedProduct{
		Product:      p,
		UnitPrice:    price,
		DisplayPrice: FormatAmount(price),
		Currency:     CurrencyFor(country),
	}
}
