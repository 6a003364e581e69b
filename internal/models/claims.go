package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the JWT payload the host platform issues to back-office
// staff. Refund and capture routes require the admin role.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the claims grant back-office access.
func (c *UserClaims) IsAdmin() bool {
	return c.Role == "admin"
}
