// internal/middleware/helpers.go
package middleware

import (
	"lifesure-service/internal/domain/user"

	"github.com/gin-gonic/gin"
)

// Caller gets the resolved caller from the request context.
func Caller(c *gin.Context) (user.User, bool) {
	v, exists := c.Get(callerKey)
	if !exists {
		return user.User{}, false
	}
	u, ok := v.(user.User)
	return u, ok
}

// MustCaller gets the resolved caller or panics. For handlers mounted
// behind Auth().
func MustCaller(c *gin.Context) user.User {
	u, ok := Caller(c)
	if !ok {
		panic("caller not found in context")
	}
	return u
}

// IsAuthenticated checks if the request carries a resolved caller.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := Caller(c)
	return ok
}
