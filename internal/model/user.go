package model

import "time"

// Permission is a capability flag on a user account.
type Permission string

const (
	PermissionAdmin   Permission = "admin"
	PermissionCompany Permission = "company"
)

// User represents a registered account
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	IsAdmin      bool      `json:"is_admin"`
	IsCompany    bool      `json:"is_company"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasPermission reports whether the named capability flag is set.
// Unknown permissions are never granted.
func (u *User) HasPermission(p Permission) bool {
	switch p {
	case PermissionAdmin:
		return u.IsAdmin
	case PermissionCompany:
		return u.IsCompany
	default:
		return false
	}
}

// RegisterRequest is the registration form payload. The nname/vname
// field names match the historical form contract (last/first name).
type RegisterRequest struct {
	Email     string `form:"email" binding:"required,email"`
	LastName  string `form:"nname" binding:"required"`
	FirstName string `form:"vname" binding:"required"`
	Username  string `form:"username" binding:"required"`
	Password  string `form:"password" binding:"required,min=6"`
}

// LoginRequest is the login form payload
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}
