package pricing

// Config carries the pricing knobs. The free-shipping threshold is compared
// against the DISCOUNTED subtotal, so a coupon can move an order across it
// in either direction.
type Config struct {
	FreeShippingThreshold float64
	ShippingFee           float64
	GSTRate               float64
}

// DefaultConfig matches the storefront's standing rules: free shipping over
// 2000, flat 150 otherwise, no GST collected.
func DefaultConfig() Config {
	return Config{FreeShippingThreshold: 2000, ShippingFee: 150, GSTRate: 0}
}

// Totals is the full price breakdown for an order.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	ShippingCost   float64 `json:"shippingCost"`
	GSTAmount      float64 `json:"gstAmount"`
	Total          float64 `json:"total"`
}

// Compute derives the totals for a subtotal and a percentage discount.
// The discount applies to the pre-shipping subtotal only; GST applies to the
// discounted subtotal.
func Compute(subtotal, discountPercent float64, cfg Config) Totals {
	if subtotal < 0 {
		subtotal = 0
	}
	if discountPercent < 0 {
		discountPercent = 0
	}
	if discountPercent > 100 {
		discountPercent = 100
	}

	discount := subtotal * discountPercent / 100
	discounted := subtotal - discount

	shipping := cfg.ShippingFee
	if discounted > cfg.FreeShippingThreshold {
		shipping = 0
	}

	gst := discounted * cfg.GSTRate

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		ShippingCost:   shipping,
		GSTAmount:      gst,
		Total:          discounted + shipping + gst,
	}
}
