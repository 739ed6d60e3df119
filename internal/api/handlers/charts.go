package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/shotcharts/internal/charts"
	"github.com/jstittsworth/shotcharts/internal/nba"
	"github.com/jstittsworth/shotcharts/internal/players"
	"github.com/jstittsworth/shotcharts/internal/services"
	"github.com/jstittsworth/shotcharts/pkg/config"
	"github.com/jstittsworth/shotcharts/pkg/utils"
	"github.com/sirupsen/logrus"
)

const svgContentType = "image/svg+xml"

// ChartsHandler renders shot charts as SVG. Both chart kinds share the
// fetch path with the JSON endpoints, so a chart request warms the same
// cache entry the data endpoints read.
type ChartsHandler struct {
	directory *players.Directory
	cache     *services.FileCache
	provider  nba.ShotProvider
	cfg       *config.Config
	logger    *logrus.Logger
}

func NewChartsHandler(directory *players.Directory, cache *services.FileCache, provider nba.ShotProvider, cfg *config.Config, logger *logrus.Logger) *ChartsHandler {
	return &ChartsHandler{
		directory: directory,
		cache:     cache,
		provider:  provider,
		cfg:       cfg,
		logger:    logger,
	}
}

// GetHeatmap renders the density heatmap for a player and season.
// Render knobs outside their documented ranges are rejected, never
// silently clamped.
func (h *ChartsHandler) GetHeatmap(c *gin.Context) {
	id, ok := playerIDParam(c)
	if !ok {
		return
	}
	name, known := h.directory.NameFor(id)
	if !known {
		utils.SendNotFound(c, "Player not found in directory")
		return
	}
	season, ok := seasonParam(c, h.cfg.CurrentSeason)
	if !ok {
		return
	}
	seasonType, ok := seasonTypeParam(c)
	if !ok {
		return
	}

	resolution := h.cfg.HeatmapResolution
	if raw := c.Query("resolution"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < charts.MinResolution || v > charts.MaxResolution {
			utils.SendValidationError(c, "Invalid resolution",
				fmt.Sprintf("resolution must be an integer between %d and %d", charts.MinResolution, charts.MaxResolution))
			return
		}
		resolution = v
	}

	bandwidth := h.cfg.HeatmapBandwidth
	if raw := c.Query("bandwidth"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < charts.MinBandwidth || v > charts.MaxBandwidth {
			utils.SendValidationError(c, "Invalid bandwidth",
				fmt.Sprintf("bandwidth must be a number between %g and %g", charts.MinBandwidth, charts.MaxBandwidth))
			return
		}
		bandwidth = v
	}

	threshold := h.cfg.HeatmapThreshold
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 1 {
			utils.SendValidationError(c, "Invalid threshold",
				"threshold must be a number between 0 and 1")
			return
		}
		threshold = v
	}

	simpleLegend := h.cfg.SimpleLegend
	if raw := c.Query("legend"); raw != "" {
		switch raw {
		case "simple":
			simpleLegend = true
		case "full":
			simpleLegend = false
		default:
			utils.SendValidationError(c, "Invalid legend",
				`legend must be "simple" or "full"`)
			return
		}
	}

	records, err := h.fetchShots(c.Request.Context(), id, season, seasonType)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"player_id": id,
			"season":    season,
		}).WithError(err).Warn("Shot data fetch failed")
		sendFetchError(c, err, "Failed to fetch shot data")
		return
	}

	opts := charts.HeatmapOptions{
		PlayerName:   name,
		Season:       season,
		Resolution:   resolution,
		Bandwidth:    bandwidth,
		Threshold:    threshold,
		SimpleLegend: simpleLegend,
	}
	svg, err := charts.RenderHeatmap(records, opts)
	if err != nil {
		// Degenerate seasons (a handful of shots from one spot) can sink
		// the estimator; serve the no-data court instead.
		h.logger.WithFields(logrus.Fields{
			"player_id": id,
			"season":    season,
			"shots":     len(records),
		}).WithError(err).Warn("Heatmap estimation failed, serving empty court")
		svg, _ = charts.RenderHeatmap(nil, opts)
	}
	c.Data(http.StatusOK, svgContentType, svg)
}

// GetShotDots renders the made/missed scatter chart for a player and
// season.
func (h *ChartsHandler) GetShotDots(c *gin.Context) {
	id, ok := playerIDParam(c)
	if !ok {
		return
	}
	if _, known := h.directory.NameFor(id); !known {
		utils.SendNotFound(c, "Player not found in directory")
		return
	}
	season, ok := seasonParam(c, h.cfg.CurrentSeason)
	if !ok {
		return
	}
	seasonType, ok := seasonTypeParam(c)
	if !ok {
		return
	}

	records, err := h.fetchShots(c.Request.Context(), id, season, seasonType)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"player_id": id,
			"season":    season,
		}).WithError(err).Warn("Shot data fetch failed")
		sendFetchError(c, err, "Failed to fetch shot data")
		return
	}

	c.Data(http.StatusOK, svgContentType, charts.RenderShotDots(records, charts.DotOptions{}))
}

func (h *ChartsHandler) fetchShots(ctx context.Context, id int, season string, seasonType nba.SeasonType) ([]nba.ShotRecord, error) {
	return h.cache.GetShots(ctx, id, season, func(ctx context.Context) ([]nba.ShotRecord, error) {
		return h.provider.FetchShots(ctx, id, season, seasonType)
	})
}
