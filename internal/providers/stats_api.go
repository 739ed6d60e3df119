package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jstittsworth/shotcharts/internal/nba"
	"github.com/jstittsworth/shotcharts/internal/services"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// stats.nba.com rejects requests without browser headers.
const statsUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

const shotChartResultSet = "Shot_Chart_Detail"

// StatsClient fetches shot chart data from the stats.nba.com API.
type StatsClient struct {
	baseURL     string
	httpClient  *http.Client
	breakers    *services.CircuitBreakerService
	rateLimiter *rate.Limiter
	logger      *logrus.Logger
}

// NewStatsClient creates a stats.nba.com client. fetchDelay spaces out
// consecutive live requests; the API bans aggressive callers.
func NewStatsClient(baseURL string, fetchDelay, timeout time.Duration, breakers *services.CircuitBreakerService, logger *logrus.Logger) *StatsClient {
	return &StatsClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breakers:    breakers,
		rateLimiter: rate.NewLimiter(rate.Every(fetchDelay), 1),
		logger:      logger,
	}
}

// shotChartResponse is the stats.nba.com tabular envelope: named result
// sets with a header row and untyped value rows.
type shotChartResponse struct {
	Resource   string `json:"resource"`
	ResultSets []struct {
		Name    string          `json:"name"`
		Headers []string        `json:"headers"`
		RowSet  [][]interface{} `json:"rowSet"`
	} `json:"resultSets"`
}

// FetchShots retrieves every field goal attempt for a player and season.
// A nil error with an empty slice means the API has no rows for that
// combination; callers decide whether that is cacheable.
func (c *StatsClient) FetchShots(ctx context.Context, playerID int, season string, seasonType nba.SeasonType) ([]nba.ShotRecord, error) {
	requestURL := c.shotChartURL(playerID, season, seasonType)

	c.logger.WithFields(logrus.Fields{
		"component":   "stats_client",
		"player_id":   playerID,
		"season":      season,
		"season_type": string(seasonType),
	}).Debug("Fetching shot chart data")

	result, err := c.breakers.Execute(services.BreakerStats, func() (interface{}, error) {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
		return c.requestShotChart(ctx, requestURL)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shot chart for player %d: %w", playerID, err)
	}

	return result.([]nba.ShotRecord), nil
}

func (c *StatsClient) requestShotChart(ctx context.Context, requestURL string) ([]nba.ShotRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("User-Agent", statsUserAgent)
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var chart shotChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("decoding shot chart response: %w", err)
	}

	return parseShotRows(chart)
}

// shotChartURL builds the shotchartdetail query. TeamID 0 means all
// teams, so trades within a season do not split the data.
func (c *StatsClient) shotChartURL(playerID int, season string, seasonType nba.SeasonType) string {
	params := url.Values{}
	params.Set("ContextMeasure", "FGA")
	params.Set("LastNGames", "0")
	params.Set("LeagueID", "00")
	params.Set("Month", "0")
	params.Set("OpponentTeamID", "0")
	params.Set("Period", "0")
	params.Set("PlayerID", strconv.Itoa(playerID))
	params.Set("Season", season)
	params.Set("SeasonType", string(seasonType))
	params.Set("TeamID", "0")
	return fmt.Sprintf("%s/stats/shotchartdetail?%s", c.baseURL, params.Encode())
}

// parseShotRows maps the Shot_Chart_Detail result set into records using
// its header row, so column reordering upstream stays harmless.
func parseShotRows(chart shotChartResponse) ([]nba.ShotRecord, error) {
	for _, rs := range chart.ResultSets {
		if rs.Name != shotChartResultSet {
			continue
		}

		col := make(map[string]int, len(rs.Headers))
		for i, h := range rs.Headers {
			col[h] = i
		}
		for _, required := range []string{"LOC_X", "LOC_Y", "SHOT_MADE_FLAG"} {
			if _, ok := col[required]; !ok {
				return nil, fmt.Errorf("shot chart response missing column %s", required)
			}
		}

		records := make([]nba.ShotRecord, 0, len(rs.RowSet))
		for _, row := range rs.RowSet {
			records = append(records, nba.ShotRecord{
				LocX:         cellFloat(row, col, "LOC_X"),
				LocY:         cellFloat(row, col, "LOC_Y"),
				Made:         cellFloat(row, col, "SHOT_MADE_FLAG") == 1,
				ShotType:     cellString(row, col, "SHOT_TYPE"),
				ShotZone:     cellString(row, col, "SHOT_ZONE_BASIC"),
				ShotDistance: cellFloat(row, col, "SHOT_DISTANCE"),
			})
		}
		return records, nil
	}

	return nil, fmt.Errorf("shot chart response missing result set %s", shotChartResultSet)
}

func cellFloat(row []interface{}, col map[string]int, name string) float64 {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return 0
	}
	v, _ := row[i].(float64)
	return v
}

func cellString(row []interface{}, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	v, _ := row[i].(string)
	return v
}
