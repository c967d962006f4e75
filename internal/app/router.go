// internal/app/router.go
package app

import (
	agentappHandler "lifesure-service/internal/handlers/agentapp"
	appHandler "lifesure-service/internal/handlers/application"
	authHandler "lifesure-service/internal/handlers/auth"
	blogHandler "lifesure-service/internal/handlers/blog"
	faqHandler "lifesure-service/internal/handlers/faq"
	newsletterHandler "lifesure-service/internal/handlers/newsletter"
	paymentHandler "lifesure-service/internal/handlers/payment"
	policyHandler "lifesure-service/internal/handlers/policy"
	reviewHandler "lifesure-service/internal/handlers/review"
	userHandler "lifesure-service/internal/handlers/user"
	"lifesure-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler        *authHandler.AuthHandler
	UserHandler        *userHandler.UserHandler
	PolicyHandler      *policyHandler.PolicyHandler
	ApplicationHandler *appHandler.ApplicationHandler
	AgentAppHandler    *agentappHandler.AgentAppHandler
	BlogHandler        *blogHandler.BlogHandler
	ReviewHandler      *reviewHandler.ReviewHandler
	FAQHandler         *faqHandler.FAQHandler
	NewsletterHandler  *newsletterHandler.NewsletterHandler
	PaymentHandler     *paymentHandler.PaymentHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// SetupRouter mounts every route. Public routes carry no auth middleware
// at all; role and ownership predicates are evaluated inside the services.
func SetupRouter(r *gin.Engine, h *Handlers) {
	auth := h.AuthMiddleware.Auth()

	// ==================== Health Check ====================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Credentials ====================
	r.POST("/jwt", h.AuthHandler.IssueToken)

	// ==================== Users ====================
	users := r.Group("/users")
	{
		users.POST("", h.UserHandler.Register) // public self-registration
		users.GET("", auth, h.UserHandler.List)
		users.GET("/:email", auth, h.UserHandler.GetByEmail)
		users.PATCH("/:email/role", auth, h.UserHandler.UpdateRole)
		users.PATCH("/:email/last-login", auth, h.UserHandler.TouchLastLogin)
		users.PUT("/profile", auth, h.UserHandler.UpdateProfile)
		users.DELETE("/:id", auth, h.UserHandler.Delete)
	}

	// ==================== Agent Applications ====================
	agentApps := r.Group("/agent-applications")
	{
		agentApps.POST("", h.AgentAppHandler.Apply) // public
		agentApps.GET("/pending", auth, h.AgentAppHandler.ListPending)
		agentApps.PATCH("/:id/approve", auth, h.AgentAppHandler.Approve)
		agentApps.PATCH("/:id/reject", auth, h.AgentAppHandler.Reject)
	}

	// ==================== Policies ====================
	policies := r.Group("/policies")
	{
		policies.GET("", h.PolicyHandler.List)               // public
		policies.GET("/popular", h.PolicyHandler.ListPopular) // public
		policies.GET("/:id", h.PolicyHandler.Get)            // public
		policies.POST("", auth, h.PolicyHandler.Create)
		policies.PUT("/:id", auth, h.PolicyHandler.Update)
		policies.DELETE("/:id", auth, h.PolicyHandler.Delete)
	}

	// ==================== Applications ====================
	applications := r.Group("/applications")
	applications.Use(auth)
	{
		applications.POST("", h.ApplicationHandler.Submit)
		applications.GET("", h.ApplicationHandler.ListAll)
		applications.GET("/agent/:email", h.ApplicationHandler.ListByAgent)
		applications.GET("/customer/:email", h.ApplicationHandler.ListByCustomer)
		applications.GET("/:id", h.ApplicationHandler.Get)
		applications.PATCH("/:id/status", h.ApplicationHandler.SetStatus)
		applications.PATCH("/:id/assign", h.ApplicationHandler.AssignAgent)
		applications.PATCH("/:id/reject", h.ApplicationHandler.Reject)
		applications.POST("/:id/pay", h.ApplicationHandler.Pay)
	}

	// ==================== Blogs ====================
	blogs := r.Group("/blogs")
	{
		blogs.GET("", h.BlogHandler.List)     // public
		blogs.GET("/:id", h.BlogHandler.Read) // public, counts the visit
		blogs.POST("", auth, h.BlogHandler.Create)
		blogs.PUT("/:id", auth, h.BlogHandler.Update)
		blogs.DELETE("/:id", auth, h.BlogHandler.Delete)
	}

	// ==================== Reviews ====================
	reviews := r.Group("/reviews")
	{
		reviews.GET("", h.ReviewHandler.List) // public
		reviews.POST("", auth, h.ReviewHandler.Create)
	}

	// ==================== FAQs ====================
	faqs := r.Group("/faqs")
	{
		faqs.GET("", h.FAQHandler.List) // public
		faqs.PATCH("/:id/helpful", h.FAQHandler.MarkHelpful)
		faqs.POST("", auth, h.FAQHandler.Create)
		faqs.PUT("/:id", auth, h.FAQHandler.Update)
		faqs.DELETE("/:id", auth, h.FAQHandler.Delete)
	}

	// ==================== Newsletter ====================
	newsletterGroup := r.Group("/newsletter")
	{
		newsletterGroup.POST("", h.NewsletterHandler.Subscribe) // public
		newsletterGroup.GET("", auth, h.NewsletterHandler.List)
	}

	// ==================== Payments ====================
	r.POST("/create-payment-intent", auth, h.PaymentHandler.CreateIntent)
}
