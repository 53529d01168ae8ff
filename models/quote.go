package models

import "math"

// Quote is the ephemeral checkout breakdown, recomputed on every relevant
// input change. ShippingCost is nil while a remote quote is pending.
type Quote struct {
	Subtotal              float64  `json:"subtotal"`
	DiscountPercent       float64  `json:"discountPercent"`
	DiscountAmount        float64  `json:"discountAmount"`
	ShippingCost          *float64 `json:"shippingCost"`
	GrandTotal            float64  `json:"grandTotal"`
	FreeShippingRemaining float64  `json:"freeShippingRemaining"`
	Calculating           bool     `json:"calculating"`
	CanSubmitPayment      bool     `json:"canSubmitPayment"`
}

// Round2 rounds money to two decimals, half away from zero. All quote fields
// pass through this so recomputation with unchanged inputs is byte-identical.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
