package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInclusivePrice(t *testing.T) {
	// ₹100.00 base at 18% -> ₹118.00
	assert.Equal(t, int64(11800), InclusivePrice(10000, 18))

	// ₹50.00 base at 5% -> ₹52.50
	assert.Equal(t, int64(5250), InclusivePrice(5000, 5))

	// missing rate falls back to 18%
	assert.Equal(t, int64(11800), InclusivePrice(10000, 0))

	// ₹33.33 base at 18% -> GST 599.94 paise rounds to 600
	assert.Equal(t, int64(600), UnitGST(3333, 18))
	assert.Equal(t, int64(3933), InclusivePrice(3333, 18))
}

func TestPriceStableUnderQuantityChange(t *testing.T) {
	line := Line{ID: "tea-1", BasePrice: 10000, Price: InclusivePrice(10000, 18), Quantity: 1, GSTRate: 18}

	before := line.Price
	line.Quantity = 7
	totals := ComputeTotals([]Line{line})

	assert.Equal(t, before, line.Price)
	assert.Equal(t, before*7, totals.Subtotal)
}

func TestComputeTotals(t *testing.T) {
	lines := []Line{
		{ID: "a", BasePrice: 10000, Price: InclusivePrice(10000, 18), Quantity: 2, GSTRate: 18},
		{ID: "b", BasePrice: 5000, Price: InclusivePrice(5000, 5), Quantity: 1, GSTRate: 5},
	}

	totals := ComputeTotals(lines)

	// 2 x 118.00 + 1 x 52.50 = 288.50
	assert.Equal(t, int64(28850), totals.Subtotal)
	// 2 x 18.00 + 1 x 2.50 = 38.50
	assert.Equal(t, int64(3850), totals.GSTAmount)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.GSTAmount)
}

func TestLineGST(t *testing.T) {
	// rounding happens at the line level, not the unit level
	assert.Equal(t, int64(3600), LineGST(10000, 2, 18))
	assert.Equal(t, int64(250), LineGST(5000, 1, 5))

	// 3333 x 3 x 18% = 1799.82 paise -> 1800
	assert.Equal(t, int64(1800), LineGST(3333, 3, 18))
}

func TestFinalAmount(t *testing.T) {
	fee := int64(4000)

	assert.Equal(t, int64(28850), FinalAmount(28850, 0, nil))
	assert.Equal(t, int64(26850), FinalAmount(28850, 2000, nil))
	assert.Equal(t, int64(30850), FinalAmount(28850, 2000, &fee))
}
