// internal/handlers/policy/policy_handler.go
package policy

import (
	"net/http"
	"strconv"

	policydomain "lifesure-service/internal/domain/policy"
	"lifesure-service/internal/middleware"
	"lifesure-service/internal/pkg/response"
	policysvc "lifesure-service/internal/service/policy"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type PolicyHandler struct {
	policyService *policysvc.Service
}

func NewPolicyHandler(policyService *policysvc.Service) *PolicyHandler {
	return &PolicyHandler{policyService: policyService}
}

// List retrieves policies with category/search filters. Public.
func (h *PolicyHandler) List(c *gin.Context) {
	var filters policydomain.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.policyService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list policies", err)
		return
	}
	response.Success(c, http.StatusOK, "policies retrieved", result)
}

// ListPopular retrieves the most purchased policies. Public.
func (h *PolicyHandler) ListPopular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))

	policies, err := h.policyService.ListPopular(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, "failed to list popular policies", err)
		return
	}
	response.Success(c, http.StatusOK, "popular policies retrieved", policies)
}

// Get retrieves a single policy. Public.
func (h *PolicyHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := ulid.Parse(id); err != nil {
		response.ValidationError(c, "invalid policy ID", err)
		return
	}

	p, err := h.policyService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to get policy", err)
		return
	}
	response.Success(c, http.StatusOK, "policy retrieved", p)
}

// Create adds a policy. Admin only.
func (h *PolicyHandler) Create(c *gin.Context) {
	var req policydomain.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid policy payload", err)
		return
	}

	p, err := h.policyService.Create(c.Request.Context(), middleware.MustCaller(c), &req)
	if err != nil {
		response.FromError(c, "failed to create policy", err)
		return
	}
	response.Success(c, http.StatusCreated, "policy created", p)
}

// Update replaces a policy's fields. Admin only.
func (h *PolicyHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := ulid.Parse(id); err != nil {
		response.ValidationError(c, "invalid policy ID", err)
		return
	}

	var req policydomain.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid policy payload", err)
		return
	}

	p, err := h.policyService.Update(c.Request.Context(), middleware.MustCaller(c), id, &req)
	if err != nil {
		response.FromError(c, "failed to update policy", err)
		return
	}
	response.Success(c, http.StatusOK, "policy updated", p)
}

// Delete removes a policy. Admin only.
func (h *PolicyHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := ulid.Parse(id); err != nil {
		response.ValidationError(c, "invalid policy ID", err)
		return
	}

	if err := h.policyService.Delete(c.Request.Context(), middleware.MustCaller(c), id); err != nil {
		response.FromError(c, "failed to delete policy", err)
		return
	}
	response.Success(c, http.StatusOK, "policy deleted", nil)
}
