package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/shotcharts/internal/api/handlers"
	"github.com/jstittsworth/shotcharts/internal/nba"
	"github.com/jstittsworth/shotcharts/internal/players"
	"github.com/jstittsworth/shotcharts/internal/services"
	"github.com/jstittsworth/shotcharts/pkg/config"
	"github.com/sirupsen/logrus"
)

// SetupRoutes configures all API routes on the given router group.
// janitor may be nil when the background sweep is disabled, limiter when
// rate limiting is off.
func SetupRoutes(group *gin.RouterGroup, directory *players.Directory, cache *services.FileCache, shots nba.ShotProvider, headshots nba.ImageProvider, janitor *services.JanitorService, limiter *services.ClientRateLimiter, cfg *config.Config, logger *logrus.Logger) {
	// Initialize handlers
	playersHandler := handlers.NewPlayersHandler(directory)
	shotsHandler := handlers.NewShotsHandler(directory, cache, shots, cfg, logger)
	chartsHandler := handlers.NewChartsHandler(directory, cache, shots, cfg, logger)
	headshotHandler := handlers.NewHeadshotHandler(directory, cache, headshots, logger)
	cacheHandler := handlers.NewCacheHandler(cache, janitor, limiter, logger)

	// Player directory
	group.GET("/players", playersHandler.GetPlayers)

	// Shot data endpoints
	group.GET("/players/:id/shots", shotsHandler.GetShots)
	group.GET("/players/:id/profile", shotsHandler.GetShotProfile)
	group.GET("/players/:id/headshot", headshotHandler.GetHeadshot)

	// Chart endpoints
	group.GET("/players/:id/charts/heatmap", chartsHandler.GetHeatmap)
	group.GET("/players/:id/charts/dots", chartsHandler.GetShotDots)

	// Cache ops endpoints
	group.GET("/cache/stats", cacheHandler.GetStats)
	group.POST("/cache/invalidate", cacheHandler.InvalidateCache)
	group.POST("/cache/sweep", cacheHandler.TriggerSweep)
}
