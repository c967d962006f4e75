// internal/handlers/agentapp/agentapp_handler.go
package agentapp

import (
	"net/http"

	agentappdomain "lifesure-service/internal/domain/agentapp"
	"lifesure-service/internal/middleware"
	"lifesure-service/internal/pkg/response"
	agentappsvc "lifesure-service/internal/service/agentapp"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type AgentAppHandler struct {
	agentAppService *agentappsvc.Service
}

func NewAgentAppHandler(agentAppService *agentappsvc.Service) *AgentAppHandler {
	return &AgentAppHandler{agentAppService: agentAppService}
}

// Apply files an agent application. Public.
func (h *AgentAppHandler) Apply(c *gin.Context) {
	var req agentappdomain.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid application payload", err)
		return
	}

	a, err := h.agentAppService.Apply(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to file agent application", err)
		return
	}
	response.Success(c, http.StatusCreated, "agent application filed", a)
}

// ListPending lists applications awaiting a decision. Admin only.
func (h *AgentAppHandler) ListPending(c *gin.Context) {
	apps, err := h.agentAppService.ListPending(c.Request.Context(), middleware.MustCaller(c))
	if err != nil {
		response.FromError(c, "failed to list pending agent applications", err)
		return
	}
	response.Success(c, http.StatusOK, "pending agent applications retrieved", apps)
}

// Approve accepts an agent application. Admin only.
func (h *AgentAppHandler) Approve(c *gin.Context) {
	id := c.Param("id")
	if _, err := ulid.Parse(id); err != nil {
		response.ValidationError(c, "invalid agent application ID", err)
		return
	}

	a, err := h.agentAppService.Approve(c.Request.Context(), middleware.MustCaller(c), id)
	if err != nil {
		response.FromError(c, "failed to approve agent application", err)
		return
	}
	response.Success(c, http.StatusOK, "agent application approved", a)
}

// Reject declines an agent application with feedback. Admin only.
func (h *AgentAppHandler) Reject(c *gin.Context) {
	id := c.Param("id")
	if _, err := ulid.Parse(id); err != nil {
		response.ValidationError(c, "invalid agent application ID", err)
		return
	}

	var req agentappdomain.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid rejection payload", err)
		return
	}

	a, err := h.agentAppService.Reject(c.Request.Context(), middleware.MustCaller(c), id, req.Feedback)
	if err != nil {
		response.FromError(c, "failed to reject agent application", err)
		return
	}
	response.Success(c, http.StatusOK, "agent application rejected", a)
}
