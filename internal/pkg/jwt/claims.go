// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims carried by a bearer credential.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// HasRole checks if the claims carry a specific role.
func (c *Claims) HasRole(role string) bool {
	return c.Role == role
}

// IsAdmin checks if the token was minted for an admin.
func (c *Claims) IsAdmin() bool {
	return c.HasRole("admin")
}
