// internal/handlers/faq/faq_handler.go
package faq

import (
	"net/http"

	faqdomain "lifesure-service/internal/domain/faq"
	"lifesure-service/internal/middleware"
	"lifesure-service/internal/pkg/response"
	faqsvc "lifesure-service/internal/service/faq"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type FAQHandler struct {
	faqService *faqsvc.Service
}

func NewFAQHandler(faqService *faqsvc.Service) *FAQHandler {
	return &FAQHandler{faqService: faqService}
}

// List returns all FAQ entries. Public.
func (h *FAQHandler) List(c *gin.Context) {
	faqs, err := h.faqService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list FAQs", err)
		return
	}
	response.Success(c, http.StatusOK, "FAQs retrieved", faqs)
}

// Create adds an entry. Admin only.
func (h *FAQHandler) Create(c *gin.Context) {
	var req faqdomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid FAQ payload", err)
		return
	}

	f, err := h.faqService.Create(c.Request.Context(), middleware.MustCaller(c), &req)
	if err != nil {
		response.FromError(c, "failed to create FAQ", err)
		return
	}
	response.Success(c, http.StatusCreated, "FAQ created", f)
}

// Update edits an entry. Admin only.
func (h *FAQHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := ulid.Parse(id); err != nil {
		response.ValidationError(c, "invalid FAQ ID", err)
		return
	}

	var req faqdomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid FAQ payload", err)
		return
	}

	f, err := h.faqService.Update(c.Request.Context(), middleware.MustCaller(c), id, &req)
	if err != nil {
		response.FromError(c, "failed to update FAQ", err)
		return
	}
	response.Success(c, http.StatusOK, "FAQ updated", f)
}

// MarkHelpful bumps the helpful-vote counter. Public.
func (h *FAQHandler) MarkHelpful(c *gin.Context) {
	id := c.Param("id")
	if _, err := ulid.Parse(id); err != nil {
		response.ValidationError(c, "invalid FAQ ID", err)
		return
	}

	f, err := h.faqService.MarkHelpful(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to record helpful vote", err)
		return
	}
	response.Success(c, http.StatusOK, "helpful vote recorded", f)
}

// Delete removes an entry. Admin only.
func (h *FAQHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := ulid.Parse(id); err != nil {
		response.ValidationError(c, "invalid FAQ ID", err)
		return
	}

	if err := h.faqService.Delete(c.Request.Context(), middleware.MustCaller(c), id); err != nil {
		response.FromError(c, "failed to delete FAQ", err)
		return
	}
	response.Success(c, http.StatusOK, "FAQ deleted", nil)
}
