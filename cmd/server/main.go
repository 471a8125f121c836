package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khangtran/folio/adapters/event"
	httpAdapter "github.com/khangtran/folio/adapters/http"
	"github.com/khangtran/folio/adapters/llm"
	"github.com/khangtran/folio/adapters/persistence"
	"github.com/khangtran/folio/internal/application/service"
	authUC "github.com/khangtran/folio/internal/application/usecase/auth"
	draftUC "github.com/khangtran/folio/internal/application/usecase/draft"
	enhanceUC "github.com/khangtran/folio/internal/application/usecase/enhance"
	publishUC "github.com/khangtran/folio/internal/application/usecase/publish"
	"github.com/khangtran/folio/internal/config"
	"github.com/khangtran/folio/pkg/auth"
	"github.com/khangtran/folio/pkg/logger"
	"github.com/khangtran/folio/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Start Folio API Server...")

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "folio-api")
		if err != nil {
			appLogger.Fatal("cannot init tracer", err)
		}
		defer tp.Shutdown(context.Background())
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	draftRepo := persistence.NewPostgresDraftRepo(dbPool, appLogger)
	registry := persistence.NewSnapshotCache(
		persistence.NewPostgresRegistryRepo(dbPool, appLogger),
		redisClient,
		cfg.Redis.CacheTTL,
		appLogger,
	)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	var enhancer service.Enhancer
	if cfg.Gemini.APIKey != "" {
		enhancer, err = llm.NewGeminiEnhancer(context.Background(), cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini enhancer", err)
		}
	} else {
		enhancer = llm.NewNoopEnhancer(appLogger)
	}

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	draftUseCase := draftUC.NewDraftUseCase(draftRepo)
	publishUseCase := publishUC.NewPublishUseCase(draftRepo, registry, kafkaClient, cfg.App.PublicURL, appLogger)
	enhanceUseCase := enhanceUC.NewEnhanceUseCase(enhancer, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase, appLogger)
	draftHandler := httpAdapter.NewDraftHandler(draftUseCase, appLogger)
	publishHandler := httpAdapter.NewPublishHandler(publishUseCase, appLogger)
	enhanceHandler := httpAdapter.NewEnhanceHandler(enhanceUseCase, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		admin := api.Group("/admin")
		{
			admin.POST("/auth/login", authHandler.Login)

			adminPrivate := admin.Group("/")
			adminPrivate.Use(authMiddleware)
			{
				adminPrivate.GET("/draft", draftHandler.GetDraft)
				adminPrivate.PATCH("/draft/fields", draftHandler.SetField)
				adminPrivate.PATCH("/draft/socials", draftHandler.SetSocial)
				adminPrivate.POST("/draft/:list", draftHandler.AddListItem)
				adminPrivate.PATCH("/draft/:list/:id", draftHandler.UpdateListItem)
				adminPrivate.DELETE("/draft/:list/:id", draftHandler.RemoveListItem)

				adminPrivate.POST("/publish", publishHandler.Publish)
				adminPrivate.GET("/published", publishHandler.ListPublished)

				adminPrivate.POST("/enhance", enhanceHandler.EnhanceText)
				adminPrivate.POST("/skills", enhanceHandler.SuggestSkills)
			}
		}

		public := api.Group("/")
		{
			public.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
			public.GET("/p/:id", publishHandler.GetPublic)
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
