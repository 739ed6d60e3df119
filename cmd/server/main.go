package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/shotcharts/internal/api"
	"github.com/jstittsworth/shotcharts/internal/api/handlers"
	"github.com/jstittsworth/shotcharts/internal/api/middleware"
	"github.com/jstittsworth/shotcharts/internal/players"
	"github.com/jstittsworth/shotcharts/internal/providers"
	"github.com/jstittsworth/shotcharts/internal/services"
	"github.com/jstittsworth/shotcharts/pkg/config"
	"github.com/jstittsworth/shotcharts/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// File cache for shot data and headshots
	cache, err := services.NewFileCache(cfg.CacheDir, cfg.ShotTTL(), cfg.ImageTTL(), log)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	// Circuit breakers and upstream clients
	breakers := services.NewCircuitBreakerService(3, 30*time.Second, log)
	statsClient := providers.NewStatsClient(cfg.StatsBaseURL, cfg.FetchDelay(), cfg.ExternalAPITimeout, breakers, log)
	headshotClient := providers.NewHeadshotClient(cfg.HeadshotBaseURL, cfg.FetchDelay(), cfg.ExternalAPITimeout, breakers, log)

	directory := players.New()
	log.Infof("Player directory loaded with %d entries", directory.Len())

	// Background cache sweep
	var janitor *services.JanitorService
	if cfg.EnableJanitor {
		janitor = services.NewJanitorService(cache, cfg.JanitorSchedule, log)
		if err := janitor.Start(); err != nil {
			log.Errorf("Failed to start janitor: %v", err)
		} else {
			defer janitor.Stop()
		}
	}

	// Per-client request limiting
	var limiter *services.ClientRateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = services.NewClientRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorLogger(log))
	router.Use(middleware.CORS(cfg.CorsOrigins))
	router.Use(middleware.RateLimit(limiter))

	// Health check endpoint
	healthHandler := handlers.NewHealthHandler(breakers)
	router.GET("/health", healthHandler.GetHealth)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, directory, cache, statsClient, headshotClient, janitor, limiter, cfg, log)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
