package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/shotcharts/internal/nba"
	"github.com/jstittsworth/shotcharts/internal/players"
	"github.com/jstittsworth/shotcharts/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChartsRouter(t *testing.T, provider nba.ShotProvider) *gin.Engine {
	t.Helper()
	cache, _ := newTestCache(t)
	h := NewChartsHandler(players.New(), cache, provider, testConfig(), newTestLogger())
	r := gin.New()
	r.GET("/api/v1/players/:id/charts/heatmap", h.GetHeatmap)
	r.GET("/api/v1/players/:id/charts/dots", h.GetShotDots)
	return r
}

// spreadShots distributes shots across the halfcourt so density
// estimation has a well-conditioned sample.
func spreadShots(n int) []nba.ShotRecord {
	records := make([]nba.ShotRecord, n)
	for i := range records {
		records[i] = nba.ShotRecord{
			LocX:         float64(i%7-3) * 50,
			LocY:         float64(i%5) * 60,
			Made:         i%2 == 0,
			ShotType:     "2PT Field Goal",
			ShotZone:     "Mid-Range",
			ShotDistance: 12,
		}
	}
	return records
}

func TestGetHeatmapRendersSVG(t *testing.T) {
	provider := &stubShotProvider{records: spreadShots(40)}
	r := newChartsRouter(t, provider)

	w := doRequest(t, r, http.MethodGet, "/api/v1/players/201939/charts/heatmap?season=2024-25", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))

	out := w.Body.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Stephen Curry — Shot Density (2024-25)")
	assert.Contains(t, out, "Total Shots: 40 | Data: stats.nba.com")
}

func TestGetHeatmapSimpleLegend(t *testing.T) {
	provider := &stubShotProvider{records: spreadShots(40)}
	r := newChartsRouter(t, provider)

	w := doRequest(t, r, http.MethodGet, "/api/v1/players/201939/charts/heatmap?legend=simple", nil)
	require.Equal(t, http.StatusOK, w.Code)

	out := w.Body.String()
	assert.NotContains(t, out, "Total Shots:")
	assert.NotContains(t, out, "Stephen Curry")
}

func TestGetHeatmapValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "resolution too low", query: "resolution=10"},
		{name: "resolution too high", query: "resolution=201"},
		{name: "resolution not a number", query: "resolution=abc"},
		{name: "bandwidth too low", query: "bandwidth=0.05"},
		{name: "bandwidth too high", query: "bandwidth=5"},
		{name: "threshold negative", query: "threshold=-0.1"},
		{name: "threshold above one", query: "threshold=1.5"},
		{name: "unknown legend", query: "legend=fancy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubShotProvider{records: spreadShots(40)}
			r := newChartsRouter(t, provider)

			w := doRequest(t, r, http.MethodGet, "/api/v1/players/201939/charts/heatmap?"+tt.query, nil)
			require.Equal(t, http.StatusBadRequest, w.Code)

			env := decodeEnvelope(t, w)
			require.NotNil(t, env.Error)
			assert.Equal(t, utils.ErrCodeValidation, env.Error.Code)
			assert.Zero(t, provider.calls, "validation failures must not hit the provider")
		})
	}
}

func TestGetHeatmapBoundaryKnobs(t *testing.T) {
	provider := &stubShotProvider{records: spreadShots(40)}
	r := newChartsRouter(t, provider)

	w := doRequest(t, r, http.MethodGet,
		"/api/v1/players/201939/charts/heatmap?resolution=50&bandwidth=1.0&threshold=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<svg")
}

func TestGetHeatmapEmptyData(t *testing.T) {
	provider := &stubShotProvider{records: []nba.ShotRecord{}}
	r := newChartsRouter(t, provider)

	w := doRequest(t, r, http.MethodGet, "/api/v1/players/201939/charts/heatmap", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "No shot data available")
}

func TestGetHeatmapDegenerateData(t *testing.T) {
	// Identical coordinates defeat the bandwidth estimate; the handler
	// falls back to the no-data court instead of erroring.
	identical := []nba.ShotRecord{
		{LocX: 10, LocY: 14, Made: true},
		{LocX: 10, LocY: 14, Made: false},
		{LocX: 10, LocY: 14, Made: true},
	}
	provider := &stubShotProvider{records: identical}
	r := newChartsRouter(t, provider)

	w := doRequest(t, r, http.MethodGet, "/api/v1/players/201939/charts/heatmap", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No shot data available")
}

func TestGetHeatmapUpstreamFailure(t *testing.T) {
	provider := &stubShotProvider{err: errors.New("stats api down")}
	r := newChartsRouter(t, provider)

	w := doRequest(t, r, http.MethodGet, "/api/v1/players/201939/charts/heatmap", nil)
	require.Equal(t, http.StatusBadGateway, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, utils.ErrCodeExternalAPI, env.Error.Code)
}

func TestGetShotDotsRendersSVG(t *testing.T) {
	provider := &stubShotProvider{records: curryShots()}
	r := newChartsRouter(t, provider)

	w := doRequest(t, r, http.MethodGet, "/api/v1/players/201939/charts/dots", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))

	out := w.Body.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "#00BFFF")
	assert.Contains(t, out, "#FF4444")
	assert.Contains(t, out, "Made (3)")
	assert.Contains(t, out, "Missed (1)")
}

func TestGetShotDotsUnknownPlayer(t *testing.T) {
	provider := &stubShotProvider{records: curryShots()}
	r := newChartsRouter(t, provider)

	w := doRequest(t, r, http.MethodGet, "/api/v1/players/999999/charts/dots", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, utils.ErrCodeNotFound, env.Error.Code)
	assert.Zero(t, provider.calls)
}

func TestGetShotDotsUpstreamFailure(t *testing.T) {
	provider := &stubShotProvider{err: errors.New("stats api down")}
	r := newChartsRouter(t, provider)

	w := doRequest(t, r, http.MethodGet, "/api/v1/players/201939/charts/dots", nil)
	require.Equal(t, http.StatusBadGateway, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, utils.ErrCodeExternalAPI, env.Error.Code)
}
