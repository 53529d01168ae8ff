package upstream

import (
	"context"
	"net/http"

	"perfume-store/models"
)

// CreateCheckoutSession hands the cart, address and coupon off to the payment
// processor and returns the redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, token string, req models.CheckoutSessionRequest) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/checkout/create-session", token, req, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", &APIError{Status: http.StatusBadGateway, Message: "Payment session did not return a redirect URL"}
	}
	return resp.URL, nil
}
