package handlers

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/shotcharts/internal/nba"
	"github.com/jstittsworth/shotcharts/pkg/utils"
	"github.com/sony/gobreaker"
)

// Seasons use the stats API's YYYY-YY form, e.g. "2024-25".
var seasonPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// playerIDParam parses the :id route param. On failure it writes the 400
// envelope and returns false, so callers can just return.
func playerIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.SendValidationError(c, "Invalid player ID", "player ID must be a positive integer")
		return 0, false
	}
	return id, true
}

// seasonParam returns ?season= or the configured fallback.
func seasonParam(c *gin.Context, fallback string) (string, bool) {
	season := c.DefaultQuery("season", fallback)
	if !seasonPattern.MatchString(season) {
		utils.SendValidationError(c, "Invalid season",
			fmt.Sprintf("season %q must use the YYYY-YY format, e.g. 2024-25", season))
		return "", false
	}
	return season, true
}

// seasonTypeParam returns ?season_type=, defaulting to the regular season.
func seasonTypeParam(c *gin.Context) (nba.SeasonType, bool) {
	raw := c.DefaultQuery("season_type", string(nba.SeasonTypeRegular))
	switch nba.SeasonType(raw) {
	case nba.SeasonTypeRegular, nba.SeasonTypePlayoffs:
		return nba.SeasonType(raw), true
	}
	utils.SendValidationError(c, "Invalid season type",
		fmt.Sprintf("season_type %q must be %q or %q", raw, nba.SeasonTypeRegular, nba.SeasonTypePlayoffs))
	return "", false
}

// sendFetchError maps a provider failure onto the error envelope. An open
// breaker is this service refusing to call out, not an upstream response,
// so it reports 503 instead of 502.
func sendFetchError(c *gin.Context, err error, message string) {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		utils.SendServiceUnavailable(c, message+": upstream calls suspended")
		return
	}
	utils.SendUpstreamError(c, message)
}
