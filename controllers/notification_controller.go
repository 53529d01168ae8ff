package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"perfume-store/middleware"
	"perfume-store/models"
	"perfume-store/services"
)

type NotificationController struct {
	Notifier *services.NotificationCenter
}

// @Summary Active notifications
// @Description Notifications queued for this session, in enqueue order
// @Tags Notifications
// @Produce json
// @Success 200 {object} models.Response
// @Router /notifications [get]
func (ctrl *NotificationController) ListNotifications(c *gin.Context) {
	notifications := ctrl.Notifier.Active(middleware.SessionID(c))
	c.JSON(http.StatusOK, models.Response{Success: true, Data: notifications})
}

// @Summary Dismiss notification
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} models.Response
// @Router /notifications/{id} [delete]
func (ctrl *NotificationController) DismissNotification(c *gin.Context) {
	ctrl.Notifier.Dismiss(middleware.SessionID(c), c.Param("id"))
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Notification dismissed"})
}
