package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"perfume-store/middleware"
	"perfume-store/models"
	"perfume-store/services"
	"perfume-store/upstream"
)

type CartController struct {
	API      *upstream.Client
	Carts    *services.CartManager
	Notifier *services.NotificationCenter
}

// @Summary Get cart
// @Description Get the session's cart snapshot with derived totals
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart := ctrl.Carts.Get(c.Request.Context(), middleware.SessionID(c))

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved",
		Data: gin.H{
			"items":         cart.Snapshot(),
			"subtotal":      models.Round2(cart.Subtotal()),
			"totalQuantity": cart.TotalQuantity(),
		},
	})
}

// @Summary Add item to cart
// @Description Add one unit of a product variant, checked against remote stock minus cart reservations
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Variant to add"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request"})
		return
	}

	sid := middleware.SessionID(c)

	// Fetch the stock fact fresh; a missing fact fails closed.
	product, err := ctrl.API.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Message: "Failed to check stock, please try again"})
		return
	}

	var variant *models.Variant
	for i := range product.Variants {
		if product.Variants[i].Size == req.Size {
			variant = &product.Variants[i]
			break
		}
	}
	if variant == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Unknown variant size"})
		return
	}

	cart := ctrl.Carts.Get(c.Request.Context(), sid)
	fact := &models.StockFact{ProductID: product.ID, TotalStockMl: product.TotalStockMl}
	if !services.IsVariantAvailable(product.ID, variant.Size, fact, cart.Snapshot()) {
		ctrl.Notifier.Notify(sid, fmt.Sprintf("%s (%gml) is out of stock", product.Name, variant.Size), services.NotifyError)
		c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Not enough stock for this size"})
		return
	}

	cart.AddItem(c.Request.Context(), models.CartLineInput{
		ProductID: product.ID,
		Name:      product.Name,
		Size:      variant.Size,
		UnitPrice: variant.Price,
		Image:     variant.Image,
	})

	ctrl.Notifier.Notify(sid, fmt.Sprintf("%s (%gml) added to cart", product.Name, variant.Size), services.NotifySuccess)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item added",
		Data:    gin.H{"totalQuantity": cart.TotalQuantity()},
	})
}

// @Summary Add a custom discovery set
// @Description Compose a discovery set from chosen scents and add it as a single generated cart line
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.DiscoverySetRequest true "Chosen scent names"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/discovery-set [post]
func (ctrl *CartController) AddDiscoverySet(c *gin.Context) {
	var req models.DiscoverySetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request"})
		return
	}

	sid := middleware.SessionID(c)

	products, err := ctrl.API.ListProducts(c.Request.Context(), upstream.CatalogQuery{})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Message: "Failed to load catalog"})
		return
	}

	var setProduct *models.Product
	for i := range products {
		if products[i].Name == "Discovery Set" {
			setProduct = &products[i]
			break
		}
	}
	if setProduct == nil || len(setProduct.Variants) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Discovery Set is not available"})
		return
	}

	variant := setProduct.Variants[0]
	cart := ctrl.Carts.Get(c.Request.Context(), sid)
	fact := &models.StockFact{ProductID: setProduct.ID, TotalStockMl: setProduct.TotalStockMl}
	if !services.IsVariantAvailable(setProduct.ID, variant.Size, fact, cart.Snapshot()) {
		c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Discovery Set is out of stock"})
		return
	}

	// Timestamped id: two identical selections stay separate lines.
	cart.AddItem(c.Request.Context(), models.CartLineInput{
		CartItemID: models.CompositeItemID(setProduct.ID),
		ProductID:  setProduct.ID,
		Name:       fmt.Sprintf("Discovery Set (%s)", strings.Join(req.Scents, ", ")),
		Size:       variant.Size,
		UnitPrice:  variant.Price,
		Image:      variant.Image,
	})

	ctrl.Notifier.Notify(sid, "Discovery Set added to cart", services.NotifySuccess)
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Discovery Set added"})
}

// @Summary Remove cart line
// @Description Delete a whole cart line by its cart item id
// @Tags Cart
// @Produce json
// @Param id path string true "Cart item ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	cart := ctrl.Carts.Get(c.Request.Context(), middleware.SessionID(c))
	cart.RemoveItem(c.Request.Context(), c.Param("id"))

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item removed",
		Data:    gin.H{"totalQuantity": cart.TotalQuantity()},
	})
}

// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	cart := ctrl.Carts.Get(c.Request.Context(), middleware.SessionID(c))
	cart.Clear(c.Request.Context())

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart cleared"})
}
