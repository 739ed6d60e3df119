package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/shotcharts/internal/nba"
	"github.com/jstittsworth/shotcharts/internal/players"
	"github.com/jstittsworth/shotcharts/internal/providers"
	"github.com/jstittsworth/shotcharts/internal/services"
	"github.com/jstittsworth/shotcharts/pkg/utils"
	"github.com/sirupsen/logrus"
)

// HeadshotHandler serves cached player headshot images.
type HeadshotHandler struct {
	directory *players.Directory
	cache     *services.FileCache
	provider  nba.ImageProvider
	logger    *logrus.Logger
}

func NewHeadshotHandler(directory *players.Directory, cache *services.FileCache, provider nba.ImageProvider, logger *logrus.Logger) *HeadshotHandler {
	return &HeadshotHandler{
		directory: directory,
		cache:     cache,
		provider:  provider,
		logger:    logger,
	}
}

// GetHeadshot returns the player's headshot as PNG bytes. The CDN does
// not carry an image for every directory player, so absence is a 404
// rather than an upstream error.
func (h *HeadshotHandler) GetHeadshot(c *gin.Context) {
	id, ok := playerIDParam(c)
	if !ok {
		return
	}
	if _, known := h.directory.NameFor(id); !known {
		utils.SendNotFound(c, "Player not found in directory")
		return
	}

	data, err := h.cache.GetImage(c.Request.Context(), id, func(ctx context.Context) ([]byte, error) {
		return h.provider.FetchHeadshot(ctx, id)
	})
	if err != nil {
		if errors.Is(err, providers.ErrHeadshotNotFound) {
			utils.SendNotFound(c, "Headshot not available")
			return
		}
		h.logger.WithField("player_id", id).WithError(err).Warn("Headshot fetch failed")
		sendFetchError(c, err, "Failed to fetch headshot")
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}
