package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"perfume-store/models"
	"perfume-store/services"
	"perfume-store/utils"
)

// AuthMiddleware requires a logged-in session with a token that still
// verifies. An expired or invalid token triggers the full sequence: notify
// the user, clear the session, and point the client at the login page — a
// session is never left half-cleared.
func AuthMiddleware(sessions *services.SessionService, notifier *services.NotificationCenter) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := SessionID(c)

		session := sessions.Current(c.Request.Context(), sid)
		if session == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message:  "Authentication required",
				Redirect: "/login",
			})
			c.Abort()
			return
		}

		if _, err := utils.ValidateToken(session.Token); err != nil {
			notifier.Notify(sid, "Your session has expired. Please log in again.", services.NotifyError)
			sessions.Logout(c.Request.Context(), sid)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message:  "Invalid or expired token",
				Redirect: "/login",
			})
			c.Abort()
			return
		}

		c.Set("token", session.Token)
		c.Set("user_id", session.UserID)
		c.Set("is_admin", session.IsAdmin)
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Message: "Access denied. Admin role required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
