package upstream

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"perfume-store/models"
)

type CatalogQuery struct {
	Search string
	Gender string
	Sort   string
}

// ListProducts fetches the catalog. Records that fail validation are dropped
// and logged rather than admitted to cart state with zero-value fields.
func (c *Client) ListProducts(ctx context.Context, query CatalogQuery) ([]models.Product, error) {
	params := url.Values{}
	if query.Search != "" {
		params.Set("keyword", query.Search)
	}
	if query.Gender != "" {
		params.Set("gender", query.Gender)
	}
	if query.Sort != "" {
		params.Set("sort", query.Sort)
	}

	path := "/products"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var raw []models.Product
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &raw); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(raw))
	for _, p := range raw {
		if err := p.Validate(); err != nil {
			log.Printf("catalog: dropping malformed product record: %v", err)
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+url.PathEscape(id), "", nil, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, &APIError{Status: http.StatusBadGateway, Message: err.Error()}
	}
	return &p, nil
}

// Admin catalog mutations, bearer-authenticated.

func (c *Client) CreateProduct(ctx context.Context, token string, req models.CreateProductRequest) (*models.Product, error) {
	var p models.Product
	if err := c.doJSON(ctx, http.MethodPost, "/products", token, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, req models.UpdateProductRequest) (*models.Product, error) {
	var p models.Product
	if err := c.doJSON(ctx, http.MethodPatch, "/products/"+url.PathEscape(id), token, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), token, nil, nil)
}
