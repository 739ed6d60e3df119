package providers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/jstittsworth/shotcharts/internal/services"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ErrHeadshotNotFound reports a player with no image on the CDN. The CDN
// answering 404 is healthy behavior and never trips the breaker.
var ErrHeadshotNotFound = errors.New("headshot not available")

const maxHeadshotBytes = 8 << 20

// HeadshotClient fetches player portrait PNGs from the NBA media CDN.
type HeadshotClient struct {
	baseURL     string
	httpClient  *http.Client
	breakers    *services.CircuitBreakerService
	rateLimiter *rate.Limiter
	logger      *logrus.Logger
}

func NewHeadshotClient(baseURL string, fetchDelay, timeout time.Duration, breakers *services.CircuitBreakerService, logger *logrus.Logger) *HeadshotClient {
	return &HeadshotClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breakers:    breakers,
		rateLimiter: rate.NewLimiter(rate.Every(fetchDelay), 1),
		logger:      logger,
	}
}

type headshotResult struct {
	data  []byte
	found bool
}

// FetchHeadshot downloads a player's portrait. Bytes are validated as a
// decodable PNG before they are returned; a missing portrait comes back
// as ErrHeadshotNotFound.
func (c *HeadshotClient) FetchHeadshot(ctx context.Context, playerID int) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/%d.png", c.baseURL, playerID)

	c.logger.WithFields(logrus.Fields{
		"component": "headshot_client",
		"player_id": playerID,
	}).Debug("Fetching player headshot")

	result, err := c.breakers.Execute(services.BreakerHeadshots, func() (interface{}, error) {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
		return c.requestHeadshot(ctx, requestURL)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch headshot for player %d: %w", playerID, err)
	}

	res := result.(headshotResult)
	if !res.found {
		return nil, ErrHeadshotNotFound
	}
	return res.data, nil
}

func (c *HeadshotClient) requestHeadshot(ctx context.Context, requestURL string) (headshotResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return headshotResult{}, err
	}
	req.Header.Set("User-Agent", statsUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return headshotResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return headshotResult{found: false}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return headshotResult{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxHeadshotBytes))
	if err != nil {
		return headshotResult{}, fmt.Errorf("reading headshot body: %w", err)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return headshotResult{}, fmt.Errorf("response is not a valid PNG: %w", err)
	}

	return headshotResult{data: data, found: true}, nil
}
