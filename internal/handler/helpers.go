package handler

import (
	"errors"
	"net/http"
	"net/url"

	"chatboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// getAuthUserID returns the authenticated user ID set by the session
// middleware.
func getAuthUserID(c *gin.Context) (int, error) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(int)
	if !ok {
		return 0, errors.New("invalid user ID type in context")
	}
	return userID, nil
}

// setFlash stores a one-shot message that survives the next redirect
func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, message, 60, "/", "", false, true)
}

// popFlash reads and clears the flash message, if any
func popFlash(c *gin.Context) string {
	message, err := c.Cookie(flashCookie)
	if err != nil || message == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return message
}

// redirectWithError sends the browser to path with an error query param
func redirectWithError(c *gin.Context, path, message string) {
	c.Redirect(http.StatusFound, path+"?error="+url.QueryEscape(message))
}

// redirectWithSuccess sends the browser to path with a success query param
func redirectWithSuccess(c *gin.Context, path, message string) {
	c.Redirect(http.StatusFound, path+"?success="+url.QueryEscape(message))
}
