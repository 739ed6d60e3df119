package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/shotcharts/internal/nba"
	"github.com/jstittsworth/shotcharts/internal/players"
	"github.com/jstittsworth/shotcharts/internal/services"
	"github.com/jstittsworth/shotcharts/internal/stats"
	"github.com/jstittsworth/shotcharts/pkg/config"
	"github.com/jstittsworth/shotcharts/pkg/utils"
	"github.com/sirupsen/logrus"
)

// ShotsHandler serves raw shot records and the derived shooting profile.
type ShotsHandler struct {
	directory *players.Directory
	cache     *services.FileCache
	provider  nba.ShotProvider
	cfg       *config.Config
	logger    *logrus.Logger
}

func NewShotsHandler(directory *players.Directory, cache *services.FileCache, provider nba.ShotProvider, cfg *config.Config, logger *logrus.Logger) *ShotsHandler {
	return &ShotsHandler{
		directory: directory,
		cache:     cache,
		provider:  provider,
		cfg:       cfg,
		logger:    logger,
	}
}

// GetShots returns every shot attempt for a player and season. An empty
// season is a successful response with an empty array, not an error.
func (h *ShotsHandler) GetShots(c *gin.Context) {
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

	utils.SendSuccessWithMeta(c, records, &utils.Meta{
		Count:      len(records),
		Season:     season,
		SeasonType: string(seasonType),
	})
}

// GetShotProfile aggregates a player's season into totals and per-type,
// per-zone and per-distance breakdowns.
func (h *ShotsHandler) GetShotProfile(c *gin.Context) {
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

	utils.SendSuccessWithMeta(c, stats.Profile(records), &utils.Meta{
		Count:      len(records),
		Season:     season,
		SeasonType: string(seasonType),
	})
}

func (h *ShotsHandler) fetchShots(ctx context.Context, id int, season string, seasonType nba.SeasonType) ([]nba.ShotRecord, error) {
	return h.cache.GetShots(ctx, id, season, func(ctx context.Context) ([]nba.ShotRecord, error) {
		return h.provider.FetchShots(ctx, id, season, seasonType)
	})
}
