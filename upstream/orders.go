package upstream

import (
	"context"
	"net/http"
	"net/url"

	"perfume-store/models"
)

func (c *Client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, token, id string) (*models.Order, error) {
	var order models.Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListAllOrders returns every order; requires an admin token.
func (c *Client) ListAllOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.doJSON(ctx, http.MethodGet, "/admin/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token, id, status string) (*models.Order, error) {
	body := map[string]string{"status": status}

	var order models.Order
	if err := c.doJSON(ctx, http.MethodPatch, "/admin/orders/"+url.PathEscape(id)+"/status", token, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
