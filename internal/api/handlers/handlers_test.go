package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/shotcharts/internal/nba"
	"github.com/jstittsworth/shotcharts/internal/services"
	"github.com/jstittsworth/shotcharts/pkg/config"
	"github.com/jstittsworth/shotcharts/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubShotProvider struct {
	records []nba.ShotRecord
	err     error
	calls   int
}

func (s *stubShotProvider) FetchShots(ctx context.Context, playerID int, season string, seasonType nba.SeasonType) ([]nba.ShotRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type stubImageProvider struct {
	data  []byte
	err   error
	calls int
}

func (s *stubImageProvider) FetchHeadshot(ctx context.Context, playerID int) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestCache(t *testing.T) (*services.FileCache, string) {
	t.Helper()
	dir := t.TempDir()
	cache, err := services.NewFileCache(dir, 24*time.Hour, 168*time.Hour, newTestLogger())
	require.NoError(t, err)
	return cache, dir
}

func testConfig() *config.Config {
	return &config.Config{
		CurrentSeason:     "2024-25",
		HeatmapResolution: 74,
		HeatmapBandwidth:  0.4,
		HeatmapThreshold:  0.05,
	}
}

// envelope mirrors utils.Response with raw data for typed re-decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *utils.AppError `json:"error"`
	Meta    *utils.Meta     `json:"meta"`
}

func doRequest(t *testing.T, r *gin.Engine, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
