package models

import (
	"fmt"
	"time"
)

// CartLine is one reserved quantity of one product variant. JSON field names
// match the snapshot format the web client persisted, so existing carts
// survive the storage format unchanged.
type CartLine struct {
	CartItemID string  `json:"cartItemId"`
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Size       float64 `json:"size"`
	UnitPrice  float64 `json:"price"`
	Image      string  `json:"image"`
	Quantity   int     `json:"quantity"`
}

func (l CartLine) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// CartLineInput is a candidate line before it enters the cart. CartItemID may
// be left empty for catalog items; composite items (discovery sets) supply
// their own timestamped id so distinct selections never collapse.
type CartLineInput struct {
	CartItemID string  `json:"cartItemId"`
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Size       float64 `json:"size"`
	UnitPrice  float64 `json:"price"`
	Image      string  `json:"image"`
}

// ItemID returns the deterministic cart item id for a catalog variant,
// e.g. "6911eb5a-10ml".
func (in CartLineInput) ItemID() string {
	if in.CartItemID != "" {
		return in.CartItemID
	}
	return VariantItemID(in.ProductID, in.Size)
}

func VariantItemID(productID string, size float64) string {
	return fmt.Sprintf("%s-%gml", productID, size)
}

// CompositeItemID builds a unique id for generated items such as custom
// discovery sets. Two identical selections made at different times stay
// separate lines.
func CompositeItemID(productID string) string {
	return fmt.Sprintf("%s-%d", productID, time.Now().UnixMilli())
}
