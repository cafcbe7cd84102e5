package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/oatside/gala/gala-backend/internal/config"
	"github.com/oatside/gala/gala-backend/internal/handler"
	"github.com/oatside/gala/gala-backend/internal/middleware"
	"github.com/oatside/gala/gala-backend/internal/repository/postgres"
	"github.com/oatside/gala/gala-backend/internal/repository/storage"
	"github.com/oatside/gala/gala-backend/internal/service"
	"github.com/oatside/gala/gala-backend/internal/websocket"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create database pool")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Msg("Database schema up to date")

	// Initialize repositories
	eventRepo := postgres.NewEventRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	entryRepo := postgres.NewBudgetEntryRepository(pool)

	// WebSocket hub doubles as the refresh publisher: every mutation
	// fans a notice out to the event's connected dashboards.
	hub := websocket.NewHub()

	// Receipt storage is optional; without S3 credentials the API runs
	// with uploads disabled.
	var receiptStore storage.ReceiptStore
	if cfg.S3.AccessKeyID != "" || cfg.S3.Endpoint != "" {
		s3Store, err := storage.NewS3ReceiptStore(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 receipt store")
		}
		receiptStore = s3Store
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Receipt storage enabled")
	} else {
		log.Warn().Msg("Receipt storage not configured, uploads disabled")
	}

	// Initialize services
	eventService := service.NewEventService(eventRepo, hub, cfg.DeleteConfirmation)
	categoryService := service.NewCategoryService(categoryRepo, eventRepo, hub)
	entryService := service.NewEntryService(entryRepo, categoryRepo, eventRepo, hub)
	summaryService := service.NewSummaryService(entryRepo, categoryRepo, eventRepo)
	receiptService := service.NewReceiptService(receiptStore, entryRepo, hub)

	// Initialize handlers
	eventHandler := handler.NewEventHandler(eventService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	entryHandler := handler.NewEntryHandler(entryService)
	summaryHandler := handler.NewSummaryHandler(summaryService)
	receiptHandler := handler.NewReceiptHandler(receiptService)
	wsHandler := handler.NewWebSocketHandler(hub, cfg.CORSOrigins)

	// Initialize auth middleware (pass-through when Auth0 is not configured)
	var authMiddleware *middleware.AuthMiddleware
	if cfg.AuthEnabled() {
		authMiddleware, err = middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize auth middleware")
		}
		log.Info().Str("domain", cfg.Auth0Domain).Msg("Auth0 JWT validation enabled")
	} else {
		authMiddleware = middleware.NewDisabledAuthMiddleware()
		log.Warn().Msg("Running without authentication")
	}

	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// Setup Echo
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))
	e.Use(middleware.RateLimitMiddleware(rateLimiter))
	e.Use(zerologMiddleware())
	e.Use(echomiddleware.Recover())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Register routes
	handler.RegisterRoutes(e, authMiddleware, eventHandler, categoryHandler, entryHandler, summaryHandler, receiptHandler, wsHandler)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("Server stopped")
}

// zerologMiddleware logs each request with method, path, status and latency.
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return err
		}
	}
}
