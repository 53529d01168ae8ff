package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"perfume-store/middleware"
	"perfume-store/models"
	"perfume-store/services"
	"perfume-store/upstream"
)

// handleUpstreamError maps a collaborator error onto the response taxonomy.
// An authorization failure always performs the full notify + logout +
// redirect sequence; validation failures pass the upstream message through;
// transient failures become 503 so the client can retry.
func handleUpstreamError(c *gin.Context, sessions *services.SessionService, notifier *services.NotificationCenter, err error) {
	sid := middleware.SessionID(c)

	if errors.Is(err, upstream.ErrUnauthorized) {
		notifier.Notify(sid, "Your session has expired. Please log in again.", services.NotifyError)
		sessions.Logout(c.Request.Context(), sid)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message:  "Session expired",
			Redirect: "/login",
		})
		return
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status > 499 {
			status = http.StatusBadGateway
		}
		c.JSON(status, models.ErrorResponse{Message: apiErr.Message})
		return
	}

	c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
		Message: "Service temporarily unavailable, please try again",
	})
}

func sessionToken(c *gin.Context) string {
	return c.GetString("token")
}
