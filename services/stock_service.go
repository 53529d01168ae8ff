package services

import "perfume-store/models"

// ReservedUnits sums the stock units (ml) already committed in the cart for
// one product across all its variants: size times quantity per line.
func ReservedUnits(productID string, lines []models.CartLine) float64 {
	var reserved float64
	for _, l := range lines {
		if l.ProductID == productID {
			reserved += l.Size * float64(l.Quantity)
		}
	}
	return reserved
}

// IsVariantAvailable reports whether one more unit of the candidate size fits
// within the product's remaining stock, counting what the cart already
// reserves. A nil fact means the stock fetch has not completed; the check
// fails closed.
//
// Must be evaluated against the current cart on every call: two sizes of the
// same product share the same stock pool.
func IsVariantAvailable(productID string, candidateSize float64, fact *models.StockFact, lines []models.CartLine) bool {
	if fact == nil {
		return false
	}
	return fact.TotalStockMl >= ReservedUnits(productID, lines)+candidateSize
}

// IsProductInStock is the coarse listing-page check: does total stock cover
// the smallest variant. Intentionally optimistic — it ignores cart
// reservations and larger sizes. IsVariantAvailable is the authoritative gate
// on adds.
func IsProductInStock(p models.Product) bool {
	if len(p.Variants) == 0 {
		return false
	}
	smallest := p.Variants[0].Size
	for _, v := range p.Variants[1:] {
		if v.Size < smallest {
			smallest = v.Size
		}
	}
	return p.TotalStockMl >= smallest
}

// VariantAvailability returns availability per variant, in variant order, for
// the product-detail view.
func VariantAvailability(p models.Product, lines []models.CartLine) []bool {
	fact := &models.StockFact{ProductID: p.ID, TotalStockMl: p.TotalStockMl}
	available := make([]bool, len(p.Variants))
	for i, v := range p.Variants {
		available[i] = IsVariantAvailable(p.ID, v.Size, fact, lines)
	}
	return available
}
