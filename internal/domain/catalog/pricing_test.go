package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencyFor_Colombia(t *testing.T) {
	assert.Equal(t, CurrencyCOP, CurrencyFor("Colombia"))
}

func TestCurrencyFor_FallsBackToMXN(t *testing.T) {
	assert.Equal(t, CurrencyMXN, CurrencyFor("México"))
	assert.Equal(t, CurrencyMXN, CurrencyFor("colombia")) // match is exact
	assert.Equal(t, CurrencyMXN, CurrencyFor(""))
}

func TestPriceFor_ColombiaFlatOverride(t *testing.T) {
	for _, p := range DefaultProducts() {
		if p.ID == oilProductID {
			continue
		}
		assert.Equal(t, int64(77350), PriceFor(p.ID, p.Price, "Colombia"), "product %d", p.ID)
	}
}

func TestPriceFor_ColombiaOilPrice(t *testing.T) {
	assert.Equal(t, int64(59400), PriceFor(3, 427, "Colombia"))
}

func TestPriceFor_OtherCountriesKeepBasePrice(t *testing.T) {
	assert.Equal(t, int64(507), PriceFor(1, 507, "México"))
	assert.Equal(t, int64(427), PriceFor(3, 427, ""))
}

func TestFormatAmount_DotThousandsNoDecimals(t *testing.T) {
	assert.Equal(t, "77.350", FormatAmount(77350))
	assert.Equal(t, "59.400", FormatAmount(59400))
	assert.Equal(t, "154.700", FormatAmount(154700))
	assert.Equal(t, "507", FormatAmount(507))
}

func TestPriced_ColombiaDisplay(t *testing.T) {
	p := Product{ID: 2, Name: "Shampoo", Price: 507}

	priced := Priced(p, "Colombia")

	assert.Equal(t, int64(77350), priced.UnitPrice)
	assert.Equal(t, "77.350", priced.DisplayPrice)
	assert.Equal(t, "COP", priced.Currency)
}

func TestDefaultProducts_Lineup(t *testing.T) {
	products := DefaultProducts()

	assert.Len(t, products, 9)
	seen := make(map[uint]bool)
	for _, p := range products {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		assert.True(t, p.Price == 507 || p.Price == 427)
	}
}
