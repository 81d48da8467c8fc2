package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatboard/internal/model"
	"chatboard/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// permAuth stubs the permission-check side of service.AuthService
type permAuth struct {
	users map[int]*model.User
}

func (p *permAuth) Register(context.Context, model.RegisterRequest) (*model.User, error) {
	panic("not used")
}
func (p *permAuth) Login(context.Context, string, string) (*model.User, error) { panic("not used") }
func (p *permAuth) UserByID(context.Context, int) (*model.User, error)         { panic("not used") }

func (p *permAuth) CheckPermissions(_ context.Context, userID int, perms ...model.Permission) (bool, error) {
	u, ok := p.users[userID]
	if !ok {
		return false, nil
	}
	for _, perm := range perms {
		if !u.HasPermission(perm) {
			return false, nil
		}
	}
	return true, nil
}

func sessionCookie(t *testing.T, sessions *session.Manager, userID int) *http.Cookie {
	t.Helper()
	token, err := sessions.Issue(userID)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: token}
}

func serve(r *gin.Engine, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager("secret", 1)

	r := gin.New()
	r.GET("/protected", RequireSession(sessions), func(c *gin.Context) {
		userID := c.GetInt(AuthUserKey)
		c.String(http.StatusOK, "user %d", userID)
	})

	// No cookie: redirected to login with an error
	w := serve(r, "/protected")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login?error=")

	// Garbage cookie: same
	w = serve(r, "/protected", &http.Cookie{Name: session.CookieName, Value: "garbage"})
	assert.Equal(t, http.StatusFound, w.Code)

	// Valid session: user ID lands in the context
	w = serve(r, "/protected", sessionCookie(t, sessions, 42))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user 42", w.Body.String())
}

func TestRedirectIfAuthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager("secret", 1)

	r := gin.New()
	r.GET("/login", RedirectIfAuthenticated(sessions), func(c *gin.Context) {
		c.String(http.StatusOK, "login page")
	})

	w := serve(r, "/login")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, "/login", sessionCookie(t, sessions, 1))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRequirePermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager("secret", 1)
	auth := &permAuth{users: map[int]*model.User{
		1: {ID: 1, IsAdmin: true},
		2: {ID: 2},
	}}

	r := gin.New()
	r.GET("/admin", RequireSession(sessions), RequirePermissions(auth, model.PermissionAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "admin area")
	})

	// Admin passes
	w := serve(r, "/admin", sessionCookie(t, sessions, 1))
	assert.Equal(t, http.StatusOK, w.Code)

	// Non-admin is turned away
	w = serve(r, "/admin", sessionCookie(t, sessions, 2))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/?error=")

	// Session for a user that no longer exists
	w = serve(r, "/admin", sessionCookie(t, sessions, 99))
	assert.Equal(t, http.StatusFound, w.Code)

	// No session at all never reaches the permission check
	w = serve(r, "/admin")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login?error=")
}
