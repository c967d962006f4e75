// internal/handlers/user/user_handler.go
package user

import (
	"net/http"

	userdomain "lifesure-service/internal/domain/user"
	"lifesure-service/internal/middleware"
	"lifesure-service/internal/pkg/response"
	usersvc "lifesure-service/internal/service/user"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type UserHandler struct {
	userService *usersvc.Service
}

func NewUserHandler(userService *usersvc.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register saves the user on first sign-in. Public; re-registering an
// existing email is a 200 no-op.
func (h *UserHandler) Register(c *gin.Context) {
	var req userdomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid registration payload", err)
		return
	}

	result, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to register user", err)
		return
	}

	if !result.Created {
		response.Success(c, http.StatusOK, "user already exists", result)
		return
	}
	response.Success(c, http.StatusCreated, "user saved", result)
}

// List retrieves all users. Admin only.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context(), middleware.MustCaller(c))
	if err != nil {
		response.FromError(c, "failed to list users", err)
		return
	}
	response.Success(c, http.StatusOK, "users retrieved", users)
}

// GetByEmail retrieves one user for its owner or an admin.
func (h *UserHandler) GetByEmail(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		response.ValidationError(c, "email is required", nil)
		return
	}

	u, err := h.userService.GetByEmail(c.Request.Context(), middleware.MustCaller(c), email)
	if err != nil {
		response.FromError(c, "failed to get user", err)
		return
	}
	response.Success(c, http.StatusOK, "user retrieved", u)
}

// UpdateRole sets a user's role. Admin only.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	email := c.Param("email")
	var req userdomain.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid role payload", err)
		return
	}

	u, err := h.userService.UpdateRole(c.Request.Context(), middleware.MustCaller(c), email, req.Role)
	if err != nil {
		response.FromError(c, "failed to update role", err)
		return
	}
	response.Success(c, http.StatusOK, "role updated", u)
}

// TouchLastLogin stamps the caller's own last sign-in time.
func (h *UserHandler) TouchLastLogin(c *gin.Context) {
	email := c.Param("email")

	if err := h.userService.TouchLastLogin(c.Request.Context(), middleware.MustCaller(c), email); err != nil {
		response.FromError(c, "failed to update last login", err)
		return
	}
	response.Success(c, http.StatusOK, "last login updated", nil)
}

// UpdateProfile updates the caller's own profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req userdomain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid profile payload", err)
		return
	}

	u, err := h.userService.UpdateProfile(c.Request.Context(), middleware.MustCaller(c), &req)
	if err != nil {
		response.FromError(c, "failed to update profile", err)
		return
	}
	response.Success(c, http.StatusOK, "profile updated", u)
}

// Delete removes a user account. Admin only.
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := ulid.Parse(id); err != nil {
		response.ValidationError(c, "invalid user ID", err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), middleware.MustCaller(c), id); err != nil {
		response.FromError(c, "failed to delete user", err)
		return
	}
	response.Success(c, http.StatusOK, "user deleted", nil)
}
