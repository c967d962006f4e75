// internal/handlers/newsletter/newsletter_handler.go
package newsletter

import (
	"net/http"

	newsletterdomain "lifesure-service/internal/domain/newsletter"
	"lifesure-service/internal/middleware"
	"lifesure-service/internal/pkg/response"
	newslettersvc "lifesure-service/internal/service/newsletter"

	"github.com/gin-gonic/gin"
)

type NewsletterHandler struct {
	newsletterService *newslettersvc.Service
}

func NewNewsletterHandler(newsletterService *newslettersvc.Service) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// Subscribe records a signup. Public; duplicate emails get 409.
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req newsletterdomain.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid subscription payload", err)
		return
	}

	sub, err := h.newsletterService.Subscribe(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to subscribe", err)
		return
	}
	response.Success(c, http.StatusCreated, "subscribed", sub)
}

// List returns all subscriptions. Admin only.
func (h *NewsletterHandler) List(c *gin.Context) {
	subs, err := h.newsletterService.List(c.Request.Context(), middleware.MustCaller(c))
	if err != nil {
		response.FromError(c, "failed to list subscriptions", err)
		return
	}
	response.Success(c, http.StatusOK, "subscriptions retrieved", subs)
}
