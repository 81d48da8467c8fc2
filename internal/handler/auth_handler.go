package handler

import (
	"errors"
	"log"
	"net/http"

	"chatboard/internal/model"
	"chatboard/internal/service"
	"chatboard/internal/session"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the public pages and the auth flows
type AuthHandler struct {
	auth     service.AuthService
	sessions *session.Manager
	appName  string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth service.AuthService, sessions *session.Manager, appName string) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, appName: appName}
}

// Index renders the public landing page
func (h *AuthHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"AppName": h.appName,
		"Error":   c.Query("error"),
	})
}

// Dashboard greets the signed-in user
func (h *AuthHandler) Dashboard(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		redirectWithError(c, "/login", "You are not logged in")
		return
	}

	user, err := h.auth.UserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Session refers to a deleted account; force a fresh login.
			h.sessions.ClearCookie(c)
			redirectWithError(c, "/login", "You are not logged in")
			return
		}
		log.Printf("Error loading dashboard user: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"AppName":  h.appName,
		"UserName": user.Username,
	})
}

// ShowRegister renders the registration form
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"AppName": h.appName,
		"Error":   c.Query("error"),
		"Success": c.Query("success"),
		"Flash":   popFlash(c),
	})
}

// Register handles the registration form POST
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithError(c, "/register", "Please fill out all fields correctly")
		return
	}

	_, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			setFlash(c, "Email or Username already exists. Please choose a different Email or Username")
			c.Redirect(http.StatusFound, "/register")
			return
		}
		log.Printf("Error during registration: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	redirectWithSuccess(c, "/login", "Account created successfully. Please login.")
}

// ShowLogin renders the login form. The error param is only ever set
// by a failed POST, never on a fresh page load.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"AppName": h.appName,
		"Error":   c.Query("error"),
		"Success": c.Query("success"),
	})
}

// Login handles the login form POST
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithError(c, "/login", "Invalid username or password")
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			redirectWithError(c, "/login", "Invalid username or password")
			return
		}
		log.Printf("Error during login: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		log.Printf("Error issuing session for user %d: %v", user.ID, err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	h.sessions.SetCookie(c, token)

	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.sessions.Current(c) == nil {
		redirectWithError(c, "/login", "You are not logged in")
		return
	}

	h.sessions.ClearCookie(c)
	redirectWithSuccess(c, "/login", "You have logged out successfully.")
}

// RegisterAuthRoutes registers the public and auth routes
func (h *AuthHandler) RegisterAuthRoutes(r *gin.Engine, sessionMW, guestMW gin.HandlerFunc) {
	r.GET("/", h.Index)
	r.GET("/dashboard", sessionMW, h.Dashboard)
	r.GET("/register", guestMW, h.ShowRegister)
	r.POST("/register", guestMW, h.Register)
	r.GET("/login", guestMW, h.ShowLogin)
	r.POST("/login", guestMW, h.Login)
	r.GET("/logout", h.Logout)
}
