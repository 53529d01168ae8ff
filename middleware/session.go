package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie    = "psid"
	sessionCookieAge = 60 * 60 * 24 * 30
)

// SessionMiddleware assigns every browser a stable session id cookie. The
// id keys the cart snapshot, checkout composer, auth state and notification
// queue for that browser.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(SessionCookie, sid, sessionCookieAge, "/", "", false, true)
		}
		c.Set("session_id", sid)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString("session_id")
}
