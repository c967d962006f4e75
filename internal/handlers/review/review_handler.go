// internal/handlers/review/review_handler.go
package review

import (
	"net/http"
	"strconv"

	reviewdomain "lifesure-service/internal/domain/review"
	"lifesure-service/internal/middleware"
	"lifesure-service/internal/pkg/response"
	reviewsvc "lifesure-service/internal/service/review"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService *reviewsvc.Service
}

func NewReviewHandler(reviewService *reviewsvc.Service) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Create posts a review. Customer, as themselves.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req reviewdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid review payload", err)
		return
	}

	rv, err := h.reviewService.Create(c.Request.Context(), middleware.MustCaller(c), &req)
	if err != nil {
		response.FromError(c, "failed to create review", err)
		return
	}
	response.Success(c, http.StatusCreated, "review created", rv)
}

// List returns the latest reviews. Public.
func (h *ReviewHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	reviews, err := h.reviewService.List(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, "failed to list reviews", err)
		return
	}
	response.Success(c, http.StatusOK, "reviews retrieved", reviews)
}
