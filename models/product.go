package models

import "fmt"

type Variant struct {
	Size  float64 `json:"size"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

type Product struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand,omitempty"`
	Description  string    `json:"description,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	TotalStockMl float64   `json:"totalStockMl"`
	Variants     []Variant `json:"variants"`
	IsHidden     bool      `json:"isHidden,omitempty"`
}

// Validate rejects catalog records the cart core cannot safely admit.
// Malformed upstream records are dropped at the boundary instead of
// propagating zero-value fields into cart state.
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product missing _id")
	}
	if p.Name == "" {
		return fmt.Errorf("product %s missing name", p.ID)
	}
	if p.TotalStockMl < 0 {
		return fmt.Errorf("product %s has negative stock", p.ID)
	}
	for i, v := range p.Variants {
		if v.Size <= 0 {
			return fmt.Errorf("product %s variant %d has non-positive size", p.ID, i)
		}
		if v.Price < 0 {
			return fmt.Errorf("product %s variant %d has negative price", p.ID, i)
		}
	}
	return nil
}

// StockFact is the read-only remaining-stock fact fetched per product.
// A nil *StockFact means the fetch has not completed and availability
// checks must fail closed.
type StockFact struct {
	ProductID    string
	TotalStockMl float64
}
