package upstream

import (
	"context"
	"net/http"

	"perfume-store/models"
)

// ValidateCoupon checks a promo code with the remote validator. An invalid or
// expired code comes back as an *APIError so the caller can surface the
// message without mutating coupon state.
func (c *Client) ValidateCoupon(ctx context.Context, code string) (models.Coupon, error) {
	var resp struct {
		IsValid         bool    `json:"isValid"`
		Code            string  `json:"code"`
		DiscountPercent float64 `json:"discountPercent"`
		Message         string  `json:"message"`
	}

	body := map[string]string{"code": code}
	if err := c.doJSON(ctx, http.MethodPost, "/coupons/validate", "", body, &resp); err != nil {
		return models.Coupon{}, err
	}

	if !resp.IsValid {
		message := resp.Message
		if message == "" {
			message = "Invalid coupon code"
		}
		return models.Coupon{}, &APIError{Status: http.StatusBadRequest, Message: message}
	}

	return models.Coupon{Code: resp.Code, DiscountPercent: resp.DiscountPercent}, nil
}
