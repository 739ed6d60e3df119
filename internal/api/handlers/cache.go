package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/shotcharts/internal/services"
	"github.com/jstittsworth/shotcharts/pkg/utils"
	"github.com/sirupsen/logrus"
)

// CacheHandler exposes the ops endpoints for the file cache.
type CacheHandler struct {
	cache   *services.FileCache
	janitor *services.JanitorService
	limiter *services.ClientRateLimiter
	logger  *logrus.Logger
}

// NewCacheHandler wires the cache ops endpoints. janitor may be nil when
// the background sweep is disabled, limiter when rate limiting is off.
func NewCacheHandler(cache *services.FileCache, janitor *services.JanitorService, limiter *services.ClientRateLimiter, logger *logrus.Logger) *CacheHandler {
	return &CacheHandler{
		cache:   cache,
		janitor: janitor,
		limiter: limiter,
		logger:  logger,
	}
}

// GetStats reports cache directory usage, background job state, and rate
// limiter pressure.
func (h *CacheHandler) GetStats(c *gin.Context) {
	stats, err := h.cache.Stats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to read cache stats")
		utils.SendInternalError(c, "Failed to read cache directory")
		return
	}

	data := gin.H{"cache": stats}
	if h.janitor != nil {
		data["jobs"] = h.janitor.GetJobs()
	}
	if h.limiter != nil {
		data["rate_limiter"] = h.limiter.GetStats()
	}
	utils.SendSuccess(c, data)
}

// TriggerSweep starts an expired-entry sweep outside the schedule. The
// sweep runs in the background; its outcome lands in the job status that
// GetStats reports.
func (h *CacheHandler) TriggerSweep(c *gin.Context) {
	if h.janitor == nil {
		utils.SendServiceUnavailable(c, "Cache janitor is disabled")
		return
	}
	h.janitor.TriggerSweep()
	utils.SendSuccess(c, gin.H{"triggered": true})
}

type invalidateRequest struct {
	PlayerID       int `json:"player_id"`
	OlderThanHours int `json:"older_than_hours"`
}

// InvalidateCache removes cache entries. A player_id removes that
// player's entries regardless of age; otherwise entries older than
// older_than_hours are removed. An empty body never wipes the cache.
func (h *CacheHandler) InvalidateCache(c *gin.Context) {
	var req invalidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if req.PlayerID < 0 || req.OlderThanHours < 0 {
		utils.SendValidationError(c, "Invalid request body",
			"player_id and older_than_hours must not be negative")
		return
	}
	if req.PlayerID == 0 && req.OlderThanHours == 0 {
		utils.SendValidationError(c, "Missing invalidation criteria",
			"provide player_id, older_than_hours, or both")
		return
	}

	removed, err := h.cache.Invalidate(req.PlayerID, time.Duration(req.OlderThanHours)*time.Hour)
	if err != nil {
		h.logger.WithError(err).Error("Cache invalidation failed")
		utils.SendInternalError(c, "Failed to invalidate cache")
		return
	}
	utils.SendSuccess(c, gin.H{"removed": removed})
}
