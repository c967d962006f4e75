// internal/handlers/application/application_handler.go
package application

import (
	"net/http"

	appdomain "lifesure-service/internal/domain/application"
	"lifesure-service/internal/middleware"
	"lifesure-service/internal/pkg/response"
	appsvc "lifesure-service/internal/service/application"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type ApplicationHandler struct {
	appService *appsvc.Service
}

func NewApplicationHandler(appService *appsvc.Service) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

func parseID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := ulid.Parse(id); err != nil {
		response.ValidationError(c, "invalid application ID", err)
		return "", false
	}
	return id, true
}

// Submit creates an application. Customer, for themselves only.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req appdomain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid application payload", err)
		return
	}

	a, err := h.appService.Submit(c.Request.Context(), middleware.MustCaller(c), &req)
	if err != nil {
		response.FromError(c, "failed to submit application", err)
		return
	}
	response.Success(c, http.StatusCreated, "application submitted", a)
}

// ListAll lists every application for admins, own assignments for agents.
func (h *ApplicationHandler) ListAll(c *gin.Context) {
	apps, err := h.appService.ListAll(c.Request.Context(), middleware.MustCaller(c))
	if err != nil {
		response.FromError(c, "failed to list applications", err)
		return
	}
	response.Success(c, http.StatusOK, "applications retrieved", apps)
}

// ListByAgent lists applications assigned to the agent in the path.
func (h *ApplicationHandler) ListByAgent(c *gin.Context) {
	apps, err := h.appService.ListByAgent(c.Request.Context(), middleware.MustCaller(c), c.Param("email"))
	if err != nil {
		response.FromError(c, "failed to list assigned applications", err)
		return
	}
	response.Success(c, http.StatusOK, "applications retrieved", apps)
}

// ListByCustomer lists applications submitted by the customer in the path.
func (h *ApplicationHandler) ListByCustomer(c *gin.Context) {
	apps, err := h.appService.ListByCustomer(c.Request.Context(), middleware.MustCaller(c), c.Param("email"))
	if err != nil {
		response.FromError(c, "failed to list applications", err)
		return
	}
	response.Success(c, http.StatusOK, "applications retrieved", apps)
}

// Get retrieves one application for an admin, the assigned agent, or the
// owning customer.
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.appService.Get(c.Request.Context(), middleware.MustCaller(c), id)
	if err != nil {
		response.FromError(c, "failed to get application", err)
		return
	}
	response.Success(c, http.StatusOK, "application retrieved", a)
}

// SetStatus moves the application to a new status. Admin or agent.
func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req appdomain.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid status payload", err)
		return
	}

	a, err := h.appService.SetStatus(c.Request.Context(), middleware.MustCaller(c), id, req.Status)
	if err != nil {
		response.FromError(c, "failed to update application status", err)
		return
	}
	response.Success(c, http.StatusOK, "application status updated", a)
}

// AssignAgent sets the assigned agent. Admin only.
func (h *ApplicationHandler) AssignAgent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req appdomain.AssignAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid assignment payload", err)
		return
	}

	a, err := h.appService.AssignAgent(c.Request.Context(), middleware.MustCaller(c), id, req.AgentEmail)
	if err != nil {
		response.FromError(c, "failed to assign agent", err)
		return
	}
	response.Success(c, http.StatusOK, "agent assigned", a)
}

// Reject declines the application with feedback. Admin or agent.
func (h *ApplicationHandler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req appdomain.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid rejection payload", err)
		return
	}

	a, err := h.appService.Reject(c.Request.Context(), middleware.MustCaller(c), id, req.Feedback)
	if err != nil {
		response.FromError(c, "failed to reject application", err)
		return
	}
	response.Success(c, http.StatusOK, "application rejected", a)
}

// Pay records payment for the caller's own approved application.
func (h *ApplicationHandler) Pay(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.appService.Pay(c.Request.Context(), middleware.MustCaller(c), id)
	if err != nil {
		response.FromError(c, "failed to record payment", err)
		return
	}
	response.Success(c, http.StatusOK, "payment recorded", a)
}
