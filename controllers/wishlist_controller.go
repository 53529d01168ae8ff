package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"perfume-store/middleware"
	"perfume-store/models"
	"perfume-store/services"
	"perfume-store/upstream"
)

type WishlistController struct {
	API      *upstream.Client
	Sessions *services.SessionService
	Notifier *services.NotificationCenter
}

// @Summary Wishlist
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /wishlist [get]
func (ctrl *WishlistController) ListWishlist(c *gin.Context) {
	products, err := ctrl.API.ListWishlist(c.Request.Context(), sessionToken(c))
	if err != nil {
		handleUpstreamError(c, ctrl.Sessions, ctrl.Notifier, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Wishlist retrieved", Data: products})
}

// @Summary Toggle wishlist entry
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /wishlist/{productId} [post]
func (ctrl *WishlistController) ToggleWishlist(c *gin.Context) {
	sid := middleware.SessionID(c)

	wishlisted, err := ctrl.API.ToggleWishlist(c.Request.Context(), sessionToken(c), c.Param("productId"))
	if err != nil {
		handleUpstreamError(c, ctrl.Sessions, ctrl.Notifier, err)
		return
	}

	message := "Removed from wishlist"
	if wishlisted {
		message = "Added to wishlist"
	}
	ctrl.Notifier.Notify(sid, message, services.NotifySuccess)
	c.JSON(http.StatusOK, models.Response{Success: true, Message: message, Data: gin.H{"wishlisted": wishlisted}})
}
