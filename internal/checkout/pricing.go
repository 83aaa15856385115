// internal/checkout/pricing.go
package checkout

import "math"

// Policy holds the storefront's shipping and tax rules. Shipping is a flat
// fee waived above the free-shipping threshold; tax is a fixed percentage of
// the subtotal. Both are pure functions of the subtotal and are recomputed on
// every request.
type Policy struct {
	ShippingFee       float64
	FreeShippingAbove float64
	TaxRate           float64
}

// DefaultPolicy matches the storefront's display: $10 flat shipping, free
// above a $50 subtotal, 8% tax.
var DefaultPolicy = Policy{
	ShippingFee:       10.0,
	FreeShippingAbove: 50.0,
	TaxRate:           0.08,
}

// Summary is the monetary breakdown of a checkout.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

func (p Policy) Shipping(subtotal float64) float64 {
	if subtotal > p.FreeShippingAbove {
		return 0
	}
	return p.ShippingFee
}

func (p Policy) Tax(subtotal float64) float64 {
	return subtotal * p.TaxRate
}

func (p Policy) Summarize(subtotal float64) Summary {
	shipping := p.Shipping(subtotal)
	tax := p.Tax(subtotal)
	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// MinorUnits converts a major-unit amount to the gateway's integer minor
// units (cents/paise). Rounds to nearest rather than truncating so
// fractional-cent drift never systematically undercharges.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// RoundDisplay rounds to two decimals for display and stored totals.
func RoundDisplay(amount float64) float64 {
	return math.Round(amount*100) / 100
}
