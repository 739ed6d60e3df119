package providers

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jstittsworth/shotcharts/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestHeadshotClient(t *testing.T, handler http.HandlerFunc) (*HeadshotClient, *services.CircuitBreakerService) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	breakers := services.NewCircuitBreakerService(1, time.Minute, logrus.New())
	client := NewHeadshotClient(server.URL, time.Millisecond, 2*time.Second, breakers, logrus.New())
	return client, breakers
}

// TestFetchHeadshotSuccess tests download and PNG validation
func TestFetchHeadshotSuccess(t *testing.T) {
	want := testPNG(t)
	var gotPath string
	client, _ := newTestHeadshotClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "image/png")
		w.Write(want)
	})

	data, err := client.FetchHeadshot(context.Background(), 201939)
	require.NoError(t, err)
	assert.Equal(t, want, data)
	assert.Equal(t, "/201939.png", gotPath)
}

// TestFetchHeadshotNotFound tests that a missing portrait is a soft miss
func TestFetchHeadshotNotFound(t *testing.T) {
	client, breakers := newTestHeadshotClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 4; i++ {
		_, err := client.FetchHeadshot(context.Background(), 99)
		assert.ErrorIs(t, err, ErrHeadshotNotFound)
	}
	assert.Equal(t, gobreaker.StateClosed, breakers.GetState(services.BreakerHeadshots),
		"404s should never trip the breaker")
}

// TestFetchHeadshotInvalidImage tests rejection of non-PNG bodies
func TestFetchHeadshotInvalidImage(t *testing.T) {
	client, _ := newTestHeadshotClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance page</html>"))
	})

	_, err := client.FetchHeadshot(context.Background(), 201939)
	assert.ErrorContains(t, err, "not a valid PNG")
}

// TestFetchHeadshotServerError tests upstream failure propagation
func TestFetchHeadshotServerError(t *testing.T) {
	client, _ := newTestHeadshotClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchHeadshot(context.Background(), 201939)
	assert.ErrorContains(t, err, "unexpected status code: 502")
}
