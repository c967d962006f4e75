// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"lifesure-service/internal/pkg/response"
	authsvc "lifesure-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *authsvc.Service
}

func NewAuthHandler(authService *authsvc.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type issueTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// IssueToken mints a bearer credential for an email.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req issueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid token request", err)
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), c.ClientIP(), req.Email)
	if err != nil {
		response.FromError(c, "failed to issue token", err)
		return
	}

	response.Success(c, http.StatusOK, "token issued", gin.H{"token": token})
}
