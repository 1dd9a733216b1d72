package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dealflow/app/echo-server/router"
	"dealflow/business/engagement"
	"dealflow/business/insights"
	"dealflow/business/portfolio"
	userService "dealflow/business/user"
	"dealflow/internal/middleware"
	"dealflow/internal/repository/events"
	"dealflow/internal/repository/llm"
	"dealflow/internal/repository/notification"
	psqlRepo "dealflow/internal/repository/postgres"
	redisRepo "dealflow/internal/repository/redis"
	"dealflow/internal/rest"
	"dealflow/pkg/config"
	"dealflow/pkg/database"
	redisdb "dealflow/pkg/database/redis"
	"dealflow/pkg/logger"
	"dealflow/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Dealflow", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	// Outbound email, selected by EMAIL_PROVIDER
	var notifRepo engagement.NotificationRepository
	switch cfg.Email.Provider {
	case "resend":
		notifRepo = notification.NewResendRepository(cfg.Email.ResendAPIKey, cfg.Email.SenderEmail, cfg.Email.SenderName)
	case "mailjet":
		notifRepo = notification.NewMailjetRepository(notification.MailjetConfig{
			BaseURL:           cfg.Email.MailjetBaseUrl,
			BasicAuthUsername: cfg.Email.MailjetBasicAuthUsername,
			BasicAuthPassword: cfg.Email.MailjetBasicAuthPassword,
			SenderEmail:       cfg.Email.SenderEmail,
			SenderName:        cfg.Email.SenderName,
		})
	default:
		logger.Warn("No email provider configured, emails will only be logged")
		notifRepo = notification.NewMockRepository()
	}

	// LLM providers. Anthropic handles structured analysis, Gemini handles
	// the operations that need web search grounding.
	provider, err := llm.NewAnthropicProvider(cfg.LLM.AnthropicAPIKey, cfg.LLM.AnthropicModel)
	if err != nil {
		logger.Fatal("Failed to init anthropic provider", "error", err)
	}

	var searchProvider insights.Provider = provider
	if cfg.LLM.GeminiAPIKey != "" {
		geminiProvider, err := llm.NewGeminiProvider(context.Background(), cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel)
		if err != nil {
			logger.Fatal("Failed to init gemini provider", "error", err)
		}
		searchProvider = geminiProvider
	} else {
		logger.Warn("GEMINI_API_KEY not set, falling back to anthropic without web search")
	}

	var publisher engagement.EventPublisher
	if cfg.Kafka.Brokers != "" {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		logger.Warn("KAFKA_BROKERS not set, engagement events will not be published")
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	onboardingRepo := psqlRepo.NewOnboardingRepository(db)
	activationRepo := psqlRepo.NewActivationRepository(db)
	retentionRepo := psqlRepo.NewRetentionRepository(db)
	dealRepo := psqlRepo.NewDealRepository(db)
	trendRepo := psqlRepo.NewTrendRepository(db)
	investmentRepo := psqlRepo.NewInvestmentRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(redisClient)

	// Init service
	engagementService := engagement.NewEngagementService(onboardingRepo, activationRepo, retentionRepo, userRepo, notifRepo, publisher)
	usrService := userService.NewUserService(userRepo, validate, notifRepo, sessionRepo, engagementService, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	insightsService := insights.NewInsightsService(provider, searchProvider, dealRepo, trendRepo, onboardingRepo, investmentRepo)
	portfolioService := portfolio.NewPortfolioService(investmentRepo, validate)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	onboardingHandler := rest.NewOnboardingHandler(engagementService)
	engagementHandler := rest.NewEngagementHandler(engagementService)
	insightsHandler := rest.NewInsightsHandler(insightsService)
	portfolioHandler := rest.NewPortfolioHandler(portfolioService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	authRequired := middleware.AuthMiddleware(usrService)
	adminOnly := middleware.AdminOnly()

	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupOnboardingRoutes(api, onboardingHandler, authRequired)
	router.SetupEngagementRoutes(api, engagementHandler, authRequired, adminOnly)
	router.SetupInsightsRoutes(api, insightsHandler, authRequired)
	router.SetupPortfolioRoutes(api, portfolioHandler, authRequired)

	// Background retention sweep, once a day
	sweepStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				start := time.Now()
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
				fired, err := engagementService.RunRetentionSweep(ctx)
				cancel()
				metrics.ReEngagementSweepDuration.Observe(time.Since(start).Seconds())
				if err != nil {
					logger.Error("Retention sweep failed", err)
					continue
				}
				logger.Info("Retention sweep finished", "fired", fired)
			case <-sweepStop:
				return
			}
		}
	}()

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	close(sweepStop)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
