package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// Claims are the signed contents of a session cookie. Nonce is a
// per-login random value; it has no consumer yet but is cleared along
// with everything else on logout since the whole token goes.
type Claims struct {
	UserID int    `json:"user_id"`
	Nonce  string `json:"nonce"`
	jwt.RegisteredClaims
}

// Manager issues and validates session cookies
type Manager struct {
	secretKey string
	ttlHours  int64
}

// NewManager creates a session Manager
func NewManager(secretKey string, ttlHours int64) *Manager {
	return &Manager{secretKey: secretKey, ttlHours: ttlHours}
}

// Issue signs a new session token for the given user
func (m *Manager) Issue(userID int) (string, error) {
	claims := &Claims{
		UserID: userID,
		Nonce:  uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * time.Duration(m.ttlHours))),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   strconv.Itoa(userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// Validate parses and verifies a session token
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid session token")
}

// Current returns the claims for the request's session cookie, or nil
// when there is no valid session.
func (m *Manager) Current(c *gin.Context) *Claims {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie == "" {
		return nil
	}
	claims, err := m.Validate(cookie)
	if err != nil {
		return nil
	}
	return claims
}

// SetCookie writes the session cookie on the response
func (m *Manager) SetCookie(c *gin.Context, token string) {
	c.SetCookie(CookieName, token, int(time.Duration(m.ttlHours)*time.Hour/time.Second), "/", "", false, true)
}

// ClearCookie expires the session cookie
func (m *Manager) ClearCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
