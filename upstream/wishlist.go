package upstream

import (
	"context"
	"net/http"
	"net/url"

	"perfume-store/models"
)

func (c *Client) ListWishlist(ctx context.Context, token string) ([]models.Product, error) {
	var products []models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/wishlist", token, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ToggleWishlist adds or removes the product and returns whether it is now
// wishlisted.
func (c *Client) ToggleWishlist(ctx context.Context, token, productID string) (bool, error) {
	var resp struct {
		Wishlisted bool `json:"wishlisted"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/wishlist/"+url.PathEscape(productID), token, nil, &resp); err != nil {
		return false, err
	}
	return resp.Wishlisted, nil
}
