package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"perfume-store/middleware"
	"perfume-store/models"
	"perfume-store/services"
)

type ContactController struct {
	Email    *models.EmailService
	Notifier *services.NotificationCenter
}

// @Summary Contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body models.ContactRequest true "Message"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /contact [post]
func (ctrl *ContactController) SendMessage(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request"})
		return
	}

	if ctrl.Email == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Message: "Contact form is not configured"})
		return
	}

	if err := ctrl.Email.SendContactEmail(req.Name, req.Email, req.Message); err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Message: "Failed to send message, please try again"})
		return
	}

	ctrl.Notifier.Notify(middleware.SessionID(c), "Message sent. We'll get back to you soon.", services.NotifySuccess)
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Message sent"})
}
