package models

type AddCartItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Size      float64 `json:"size" binding:"required,gt=0"`
}

type DiscoverySetRequest struct {
	Scents []string `json:"scents" binding:"required,min=1"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

type ShippingUpdateRequest struct {
	Postcode string `json:"postcode"`
	Method   string `json:"method"`
}

type PayRequest struct {
	ShippingInfo   ShippingInfo `json:"shippingInfo" binding:"required"`
	ShippingMethod string       `json:"shippingMethod"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type CreateProductRequest struct {
	Name         string    `json:"name" binding:"required"`
	Brand        string    `json:"brand"`
	Description  string    `json:"description"`
	Gender       string    `json:"gender"`
	TotalStockMl float64   `json:"totalStockMl"`
	Variants     []Variant `json:"variants" binding:"required,min=1"`
}

type UpdateProductRequest struct {
	Name         *string   `json:"name"`
	Brand        *string   `json:"brand"`
	Description  *string   `json:"description"`
	Gender       *string   `json:"gender"`
	TotalStockMl *float64  `json:"totalStockMl"`
	Variants     []Variant `json:"variants"`
	IsHidden     *bool     `json:"isHidden"`
}

type RestockRequest struct {
	AmountMl float64 `json:"amountMl" binding:"required,gt=0"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
