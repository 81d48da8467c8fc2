package middleware

import (
	"log"
	"net/http"
	"net/url"

	"chatboard/internal/model"
	"chatboard/internal/service"

	"github.com/gin-gonic/gin"
)

// RequirePermissions gates a route on capability flags of the session
// user. Must run after RequireSession. No current route mounts it; it
// is the authorization primitive for any handler that needs one.
func RequirePermissions(auth service.AuthService, perms ...model.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get(AuthUserKey)
		if !exists {
			c.Redirect(http.StatusFound, "/login?error="+url.QueryEscape("You are not logged in"))
			c.Abort()
			return
		}
		userID, ok := userIDVal.(int)
		if !ok {
			c.Redirect(http.StatusFound, "/login?error="+url.QueryEscape("You are not logged in"))
			c.Abort()
			return
		}

		allowed, err := auth.CheckPermissions(c.Request.Context(), userID, perms...)
		if err != nil {
			log.Printf("Error checking permissions for user %d: %v", userID, err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if !allowed {
			c.Redirect(http.StatusFound, "/?error="+url.QueryEscape("You do not have permission to access this page"))
			c.Abort()
			return
		}

		c.Next()
	}
}
