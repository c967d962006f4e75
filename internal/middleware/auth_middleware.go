// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"lifesure-service/internal/domain/user"
	xerrors "lifesure-service/internal/pkg/errors"
	"lifesure-service/internal/pkg/jwt"
	"lifesure-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// CallerResolver resolves a verified email to its stored account on every
// request. No caching sits in front of it: a role change is live on the
// caller's next request.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, email string) (user.User, error)
}

type AuthMiddleware struct {
	tokens *jwt.Manager
	users  CallerResolver
}

func NewAuthMiddleware(tokens *jwt.Manager, users CallerResolver) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
	}
}

// Auth validates the bearer credential and resolves the caller's account.
// Verification failures and unknown accounts are both 401; never treated
// as an anonymous caller.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", jwt.ErrTokenMissing)
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", err)
			return
		}

		caller, err := m.users.ResolveCaller(c.Request.Context(), claims.Email)
		if err != nil {
			if xerrors.Is(err, xerrors.ErrNotFound) {
				response.Error(c, http.StatusUnauthorized, "account not registered", err)
				return
			}
			response.Error(c, http.StatusInternalServerError, "failed to resolve caller", err)
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
