package upstream

import (
	"context"
	"net/http"
)

// QuoteShipping prices delivery for a postcode. The quote composer falls back
// to a fixed price on error, so this returns failures untranslated beyond the
// standard taxonomy.
func (c *Client) QuoteShipping(ctx context.Context, postcode, method string, cartTotal float64) (float64, error) {
	body := map[string]interface{}{
		"postcode":  postcode,
		"method":    method,
		"cartTotal": cartTotal,
	}

	var resp struct {
		Price float64 `json:"price"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/shipping/quote", "", body, &resp); err != nil {
		return 0, err
	}
	return resp.Price, nil
}
