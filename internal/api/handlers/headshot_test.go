package handlers

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/shotcharts/internal/players"
	"github.com/jstittsworth/shotcharts/internal/providers"
	"github.com/jstittsworth/shotcharts/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeadshotRouter(t *testing.T, provider *stubImageProvider) *gin.Engine {
	t.Helper()
	cache, _ := newTestCache(t)
	h := NewHeadshotHandler(players.New(), cache, provider, newTestLogger())
	r := gin.New()
	r.GET("/api/v1/players/:id/headshot", h.GetHeadshot)
	return r
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestGetHeadshotSuccess(t *testing.T) {
	provider := &stubImageProvider{data: testPNG(t)}
	r := newHeadshotRouter(t, provider)

	w := doRequest(t, r, http.MethodGet, "/api/v1/players/201939/headshot", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, provider.data, w.Body.Bytes())
	assert.Equal(t, 1, provider.calls)

	// Second request is served from the file cache.
	w = doRequest(t, r, http.MethodGet, "/api/v1/players/201939/headshot", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, provider.calls)
}

func TestGetHeadshotNotFound(t *testing.T) {
	provider := &stubImageProvider{err: providers.ErrHeadshotNotFound}
	r := newHeadshotRouter(t, provider)

	w := doRequest(t, r, http.MethodGet, "/api/v1/players/201939/headshot", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, utils.ErrCodeNotFound, env.Error.Code)
}

func TestGetHeadshotUnknownPlayer(t *testing.T) {
	provider := &stubImageProvider{data: testPNG(t)}
	r := newHeadshotRouter(t, provider)

	w := doRequest(t, r, http.MethodGet, "/api/v1/players/999999/headshot", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, provider.calls)
}

func TestGetHeadshotUpstreamFailure(t *testing.T) {
	provider := &stubImageProvider{err: errors.New("cdn down")}
	r := newHeadshotRouter(t, provider)

	w := doRequest(t, r, http.MethodGet, "/api/v1/players/201939/headshot", nil)
	require.Equal(t, http.StatusBadGateway, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, utils.ErrCodeExternalAPI, env.Error.Code)
}
