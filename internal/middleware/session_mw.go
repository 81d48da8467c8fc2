package middleware

import (
	"net/http"
	"net/url"

	"chatboard/internal/session"

	"github.com/gin-gonic/gin"
)

// AuthUserKey is the context key holding the authenticated user's ID.
const AuthUserKey = "authUser"

// RequireSession guards a route behind a valid session cookie. Browser
// flow, so failures redirect to the login page rather than returning a
// JSON 401.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := sessions.Current(c)
		if claims == nil {
			c.Redirect(http.StatusFound, "/login?error="+url.QueryEscape("You are not logged in"))
			c.Abort()
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Next()
	}
}

// RedirectIfAuthenticated bounces already-signed-in users away from
// the register and login pages.
func RedirectIfAuthenticated(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.Current(c) != nil {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
