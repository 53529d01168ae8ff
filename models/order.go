package models

import "time"

type ShippingInfo struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Address  string `json:"address" binding:"required"`
	City     string `json:"city" binding:"required"`
	Postcode string `json:"postcode" binding:"required"`
	Country  string `json:"country" binding:"required"`
}

type OrderLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Size      float64 `json:"size"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID        string      `json:"_id"`
	UserID    string      `json:"userId"`
	Items     []OrderLine `json:"items"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CheckoutSessionRequest is the payment hand-off payload sent upstream.
type CheckoutSessionRequest struct {
	CartItems      []CartLine   `json:"cartItems"`
	ShippingInfo   ShippingInfo `json:"shippingInfo"`
	ShippingMethod string       `json:"shippingMethod"`
	UserID         string       `json:"userId,omitempty"`
	CouponCode     string       `json:"couponCode,omitempty"`
}
