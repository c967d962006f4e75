// internal/handlers/payment/payment_handler.go
package payment

import (
	"net/http"

	"lifesure-service/internal/pkg/response"
	paymentsvc "lifesure-service/internal/service/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService *paymentsvc.Service
}

func NewPaymentHandler(paymentService *paymentsvc.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type createIntentRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// CreateIntent creates a payment intent for an amount in minor units and
// returns the provider's client secret.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid payment intent payload", err)
		return
	}

	secret, err := h.paymentService.CreateIntent(c.Request.Context(), req.Amount)
	if err != nil {
		response.FromError(c, "failed to create payment intent", err)
		return
	}
	response.Success(c, http.StatusOK, "payment intent created", gin.H{"clientSecret": secret})
}
