package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"perfume-store/models"
	"perfume-store/services"
	"perfume-store/upstream"
)

type OrderController struct {
	API      *upstream.Client
	Sessions *services.SessionService
	Notifier *services.NotificationCenter
}

// @Summary Order history
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /orders [get]
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	orders, err := ctrl.API.ListOrders(c.Request.Context(), sessionToken(c))
	if err != nil {
		handleUpstreamError(c, ctrl.Sessions, ctrl.Notifier, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Orders retrieved", Data: orders})
}

// @Summary Order detail
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	order, err := ctrl.API.GetOrder(c.Request.Context(), sessionToken(c), c.Param("id"))
	if err != nil {
		handleUpstreamError(c, ctrl.Sessions, ctrl.Notifier, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Order retrieved", Data: order})
}
