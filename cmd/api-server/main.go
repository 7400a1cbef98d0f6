package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"bookhub/database"
	"bookhub/internal/cache"
	"bookhub/internal/config"
	"bookhub/internal/httpapi/handler"
	"bookhub/internal/httpapi/middleware"
	"bookhub/internal/httpapi/repository"
	"bookhub/internal/httpapi/service"
	"bookhub/internal/llm"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	// 2. Connect to the database (schema is migrated idempotently on startup)
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("database handle unavailable", "error", err)
		os.Exit(1)
	}

	// 3. Inference offload: llama-server client behind a bounded worker pool
	client := llm.NewClient(cfg.LLMServerURL, cfg.LLMModelFile, cfg.LLMTimeout)
	pool := llm.NewWorkerPool(client, cfg.LLMWorkers, cfg.LLMQueueSize, logger)
	pool.Start()
	defer pool.Shutdown()

	// 4. Optional Redis cache for generated text
	var genCache *cache.GenerationCache
	if cfg.RedisAddr != "" {
		genCache, err = cache.NewGenerationCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			logger.Warn("generation cache disabled", "error", err)
			genCache = nil
		} else {
			defer genCache.Close()
		}
	}

	// 5. Wire repositories, services, handlers
	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	authService := service.NewAuthService(userRepo)
	llmService := service.NewLLMService(pool, genCache, cfg.LLMTimeout)
	bookService := service.NewBookService(bookRepo, llmService)
	reviewService := service.NewReviewService(reviewRepo, bookService)

	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	llmHandler := handler.NewLLMHandler(llmService)

	// 6. Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	r.GET("/check-conn", handler.Health(sqlDB))

	r.POST("/register", authHandler.Register)
	r.GET("/users/me", middleware.BasicAuth(authService), authHandler.Me)

	books := r.Group("/books")
	bookHandler.RegisterRoutes(books)
	reviewHandler.RegisterRoutes(books)

	// inference endpoints are expensive, keep them behind the limiter
	limited := middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)
	r.GET("/recommendations", limited, llmHandler.Recommend)
	r.POST("/generate-summary", limited, llmHandler.GenerateSummary)

	httpServer := fmt.Sprintf("127.0.0.1:%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", httpServer)
	if err := r.Run(httpServer); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
