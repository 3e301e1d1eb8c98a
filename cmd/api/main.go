// @title Quiz Deck API
// @version 1.0
// @description Browse question categories, page through questions, grade answers and edit the deck.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quiz-deck/cmd/api/docs"
	"quiz-deck/internal/adapter"
	"quiz-deck/internal/config"
	"quiz-deck/internal/handler"
	"quiz-deck/internal/logger"
	"quiz-deck/internal/middleware"
	"quiz-deck/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const startupTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer func() { _ = logger.Sync() }()

	startCtx, cancelStart := context.WithTimeout(context.Background(), startupTimeout)
	defer cancelStart()

	overrides, closeStore, err := adapter.OpenOverrideStore(startCtx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize override store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closeStore()
	appLogger.Info("Override store initialized", zap.String("backend", cfg.Store.Backend))

	source := adapter.NewQuestionSource(cfg.Source)
	store := service.NewQuestionStore(overrides, source, cfg.Store.Key)
	nav := service.NewNavigationController(store, cfg.Deck)

	// A failed load keeps the session in the error view; the server still starts.
	if err := nav.Start(startCtx); err != nil {
		appLogger.Error("Questions unavailable, serving error view", zap.Error(err))
	}

	deckHandler := handler.NewDeckHandler(nav, overrides)
	validationMiddleware := middleware.NewValidationMiddleware()
	middleware.InitMetrics(prometheus.DefaultRegisterer)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	app.Use(middleware.Metrics())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", middleware.MetricsHandler(prometheus.DefaultGatherer))
	app.Get("/healthz", deckHandler.Health)

	deckHandler.RegisterRoutes(app.Group("/api"), validationMiddleware)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
