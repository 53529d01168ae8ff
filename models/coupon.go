package models

type Coupon struct {
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discountPercent"`
}
