package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"perfume-store/config"
	"perfume-store/middleware"
	"perfume-store/models"
	"perfume-store/services"
	"perfume-store/upstream"
)

type ProductController struct {
	API   *upstream.Client
	Carts *services.CartManager
}

func productCacheKey(search, gender, sort string) string {
	return fmt.Sprintf("products_list_s%s_g%s_o%s", search, gender, sort)
}

func invalidateProductCache() {
	if config.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := config.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		config.RedisClient.Del(ctx, iter.Val())
	}
}

// @Summary List products
// @Description Get the catalog with optional keyword/gender filters and sort order
// @Tags Products
// @Produce json
// @Param search query string false "Search by name"
// @Param gender query string false "Filter by gender"
// @Param sort query string false "Sort order"
// @Success 200 {object} models.Response
// @Router /products [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	search := c.Query("search")
	gender := c.Query("gender")
	sort := c.Query("sort")

	cacheKey := productCacheKey(search, gender, sort)
	if config.RedisClient != nil {
		cached, err := config.RedisClient.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	products, err := ctrl.API.ListProducts(c.Request.Context(), upstream.CatalogQuery{
		Search: search,
		Gender: gender,
		Sort:   sort,
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Message: "Failed to load products"})
		return
	}

	data := make([]gin.H, 0, len(products))
	for _, p := range products {
		if p.IsHidden {
			continue
		}
		data = append(data, gin.H{
			"product": p,
			// Coarse pre-filter only; the detail view runs the
			// reservation-aware check before any add.
			"inStock": services.IsProductInStock(p),
		})
	}

	response := models.Response{Success: true, Message: "Products retrieved", Data: data}

	if config.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		config.RedisClient.Set(c.Request.Context(), cacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get product detail
// @Description Get one product with per-variant availability against the current cart
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	product, err := ctrl.API.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Product not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Message: "Failed to load product"})
		return
	}

	cart := ctrl.Carts.Get(c.Request.Context(), middleware.SessionID(c))
	availability := services.VariantAvailability(*product, cart.Snapshot())

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product retrieved",
		Data: gin.H{
			"product":          product,
			"variantAvailable": availability,
		},
	})
}
