// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"lifesure-service/internal/config"
	"lifesure-service/internal/db"
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
	"lifesure-service/internal/pkg/jwt"
	"lifesure-service/internal/pkg/ratelimit"
	"lifesure-service/internal/repository/postgres"
	agentappUsecase "lifesure-service/internal/service/agentapp"
	appUsecase "lifesure-service/internal/service/application"
	authUsecase "lifesure-service/internal/service/auth"
	blogUsecase "lifesure-service/internal/service/blog"
	faqUsecase "lifesure-service/internal/service/faq"
	newsletterUsecase "lifesure-service/internal/service/newsletter"
	paymentUsecase "lifesure-service/internal/service/payment"
	policyUsecase "lifesure-service/internal/service/policy"
	reviewUsecase "lifesure-service/internal/service/review"
	userUsecase "lifesure-service/internal/service/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] connected")

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- JWT Manager -----
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}

	// ----- Rate Limiter -----
	limiter := ratelimit.NewLimiter(redisClient)

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	userRepo := postgres.NewUserRepository(pool)
	policyRepo := postgres.NewPolicyRepository(pool)
	applicationRepo := postgres.NewApplicationRepository(pool, dbWrapper)
	agentAppRepo := postgres.NewAgentApplicationRepository(pool)
	blogRepo := postgres.NewBlogRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	faqRepo := postgres.NewFAQRepository(pool)
	newsletterRepo := postgres.NewNewsletterRepository(pool)

	// ----- Services (Usecases) -----
	userService := userUsecase.NewService(userRepo, logger)
	authService := authUsecase.NewService(userRepo, jwtManager, limiter, logger)
	policyService := policyUsecase.NewService(policyRepo, logger)
	applicationService := appUsecase.NewService(applicationRepo, policyRepo, userRepo, logger)
	agentAppService := agentappUsecase.NewService(agentAppRepo, logger)
	blogService := blogUsecase.NewService(blogRepo, logger)
	reviewService := reviewUsecase.NewService(reviewRepo, logger)
	faqService := faqUsecase.NewService(faqRepo, logger)
	newsletterService := newsletterUsecase.NewService(newsletterRepo, logger)
	paymentService := paymentUsecase.NewService(
		paymentUsecase.NewStripeProvider(s.cfg.StripeSecretKey),
		logger,
	)

	// ----- Bootstrap admin -----
	if s.cfg.AdminEmail != "" {
		if err := userService.EnsureAdminExists(ctx, s.cfg.AdminEmail); err != nil {
			logger.Warn("failed to ensure admin exists", zap.String("email", s.cfg.AdminEmail), zap.Error(err))
			// Don't fail startup; the account may simply not be registered yet.
		}
	}

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:        authHandler.NewAuthHandler(authService),
		UserHandler:        userHandler.NewUserHandler(userService),
		PolicyHandler:      policyHandler.NewPolicyHandler(policyService),
		ApplicationHandler: appHandler.NewApplicationHandler(applicationService),
		AgentAppHandler:    agentappHandler.NewAgentAppHandler(agentAppService),
		BlogHandler:        blogHandler.NewBlogHandler(blogService),
		ReviewHandler:      reviewHandler.NewReviewHandler(reviewService),
		FAQHandler:         faqHandler.NewFAQHandler(faqService),
		NewsletterHandler:  newsletterHandler.NewNewsletterHandler(newsletterService),
		PaymentHandler:     paymentHandler.NewPaymentHandler(paymentService),
		AuthMiddleware:     middleware.NewAuthMiddleware(jwtManager, userService),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
