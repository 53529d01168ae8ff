package upstream

import (
	"context"
	"net/http"

	"perfume-store/models"
)

func (c *Client) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp models.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", body, &resp); err != nil {
		return models.LoginResponse{}, err
	}
	return resp, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (models.LoginResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var resp models.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", body, &resp); err != nil {
		return models.LoginResponse{}, err
	}
	return resp, nil
}
