// @title HSC Syllabus Mapper API
// @version 1.0
// @description Dev-facing service that classifies HSC mathematics exam questions against the syllabus dot point taxonomy using a multi-stage LLM workflow.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"hsc-mapper/internal/adapter"
	"hsc-mapper/internal/adapter/completion"
	"hsc-mapper/internal/cache"
	"hsc-mapper/internal/classifier"
	"hsc-mapper/internal/config"
	"hsc-mapper/internal/database"
	"hsc-mapper/internal/domain"
	"hsc-mapper/internal/handler"
	"hsc-mapper/internal/logger"
	"hsc-mapper/internal/middleware"
	"hsc-mapper/internal/repository"
	"hsc-mapper/internal/service"
	"hsc-mapper/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Initialize text-completion backend
	var completer domain.TextCompleter
	switch cfg.LLM.Source {
	case "ollama":
		appLogger.Info("Initializing Ollama completer",
			zap.String("server_url", cfg.LLM.ServerURL), zap.String("model", cfg.LLM.Model))
		completer, err = completion.NewOllamaCompleter(cfg.LLM)
		if err != nil {
			appLogger.Fatal("Failed to create Ollama completer", zap.Error(err))
		}
	case "openai":
		appLogger.Info("Initializing OpenAI completer", zap.String("model", cfg.LLM.OpenAIModel))
		completer, err = completion.NewOpenAICompleter(cfg.LLM)
		if err != nil {
			appLogger.Fatal("Failed to create OpenAI completer", zap.Error(err))
		}
	default:
		appLogger.Fatal(fmt.Sprintf("Unsupported LLM source: %s. Please check llm.source in config.", cfg.LLM.Source))
	}

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	taxonomyRepository := repository.NewTaxonomyDatabaseAdapter(db)
	questionRepository := repository.NewQuestionDatabaseAdapter(db)

	// Initialize Redis-backed taxonomy cache; the service degrades to direct
	// repository reads when Redis is not configured.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("RedisCacheAdapter initialized")
	} else {
		appLogger.Warn("Redis address not configured; taxonomy caching disabled")
	}
	taxonomyProvider := service.NewTaxonomyCacheService(cacheAdapter, taxonomyRepository, cfg)

	// Classification stages are stateless configuration values, constructed
	// once and shared across requests.
	topicStage := classifier.NewStage("topic classifier", completer)
	subtopicStage := classifier.NewStage("subtopic classifier", completer)
	dotPointMapper := classifier.NewDotPointMapper(completer)

	mappingService := service.NewMappingService(
		taxonomyProvider,
		questionRepository,
		topicStage,
		subtopicStage,
		dotPointMapper,
		cfg,
		appLogger,
	)
	appLogger.Info("MappingService initialized")

	// Initialize handlers
	validator := validation.NewValidator()
	mappingHandler := handler.NewMappingHandler(mappingService, validator)
	healthHandler := handler.NewHealthHandler(db, cacheAdapter)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/healthz", healthHandler.Health)

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Get("/taxonomy/topics", mappingHandler.GetTopicTree)

	// Dev routes
	devGroup := apiGroup.Group("/dev")
	devGroup.Post("/map-syllabus-dot-points", mappingHandler.MapSyllabusDotPoints)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
