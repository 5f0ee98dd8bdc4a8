// internal/domain/pricing/calculator.go
package pricing

import "math"

// DefaultGSTRate is applied when a catalog entry carries no rate
const DefaultGSTRate = 18.0

// Line is a single cart line with prices in paise. BasePrice is the
// GST-exclusive catalog price; Price is the GST-inclusive unit price derived
// once when the item entered the cart. Quantity changes never re-derive Price.
type Line struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice int64   `json:"base_price"` // GST-exclusive unit price in paise
	Price     int64   `json:"price"`      // GST-inclusive unit price in paise
	Quantity  int     `json:"quantity"`
	GSTRate   float64 `json:"gst_rate"` // percent
}

// Totals is the computed order-level breakdown in paise
type Totals struct {
	Subtotal  int64 `json:"subtotal"`   // sum of GST-inclusive line totals
	GSTAmount int64 `json:"gst_amount"` // sum of per-line GST
}

// NormalizeRate substitutes the default GST rate for a missing catalog rate
func NormalizeRate(rate float64) float64 {
	if rate <= 0 {
		return DefaultGSTRate
	}
	return rate
}

// UnitGST returns the GST on one unit, rounded to the paisa
func UnitGST(basePrice int64, rate float64) int64 {
	rate = NormalizeRate(rate)
	return roundPaise(float64(basePrice) * rate / 100)
}

// InclusivePrice derives the GST-inclusive unit price from the catalog base
// price. This is the only place the inclusive price is ever computed; it is
// captured on the cart line and carried through to the order unchanged.
func InclusivePrice(basePrice int64, rate float64) int64 {
	return basePrice + UnitGST(basePrice, rate)
}

// LineGST returns the GST portion of a whole line, rounded at the line level
func LineGST(basePrice int64, quantity int, rate float64) int64 {
	rate = NormalizeRate(rate)
	return roundPaise(float64(basePrice) * float64(quantity) * rate / 100)
}

// ComputeTotals sums GST-inclusive line totals and per-line GST for a cart.
// An empty cart yields zero totals.
func ComputeTotals(lines []Line) Totals {
	var totals Totals
	for _, line := range lines {
		totals.Subtotal += line.Price * int64(line.Quantity)
		totals.GSTAmount += (line.Price - line.BasePrice) * int64(line.Quantity)
	}
	return totals
}

// FinalAmount derives the amount actually collected for an order. The
// delivery fee is nullable until staff set it; a nil fee contributes zero.
func FinalAmount(subtotal, loyaltyDiscount int64, deliveryFee *int64) int64 {
	final := subtotal - loyaltyDiscount
	if deliveryFee != nil {
		final += *deliveryFee
	}
	return final
}

func roundPaise(v float64) int64 {
	return int64(math.Round(v))
}
