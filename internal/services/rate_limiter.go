package services

import (
	"fmt"
	"sync"
	"time"
)

// ClientRateLimiter caps requests per client over a sliding window. The
// chart endpoints re-render on every call and can trigger upstream
// fetches, so one hot client must not starve the rest.
type ClientRateLimiter struct {
	mu          sync.RWMutex
	requests    map[string][]time.Time
	maxRequests int
	window      time.Duration
}

// NewClientRateLimiter creates a limiter allowing maxRequests per client
// key within window.
func NewClientRateLimiter(maxRequests int, window time.Duration) *ClientRateLimiter {
	return &ClientRateLimiter{
		requests:    make(map[string][]time.Time),
		maxRequests: maxRequests,
		window:      window,
	}
}

// Allow records a request for the client key and reports whether it fits
// the window.
func (rl *ClientRateLimiter) Allow(client string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.cleanupOldRequests(client, now)

	if len(rl.requests[client]) >= rl.maxRequests {
		return fmt.Errorf("rate limit exceeded: maximum %d requests per %v", rl.maxRequests, rl.window)
	}

	rl.requests[client] = append(rl.requests[client], now)
	return nil
}

// cleanupOldRequests drops requests outside the window.
func (rl *ClientRateLimiter) cleanupOldRequests(client string, now time.Time) {
	requests, exists := rl.requests[client]
	if !exists {
		return
	}

	cutoff := now.Add(-rl.window)
	valid := make([]time.Time, 0, len(requests))
	for _, req := range requests {
		if req.After(cutoff) {
			valid = append(valid, req)
		}
	}

	if len(valid) == 0 {
		delete(rl.requests, client)
	} else {
		rl.requests[client] = valid
	}
}

// GetStats returns limiter statistics for the ops endpoints.
func (rl *ClientRateLimiter) GetStats() map[string]interface{} {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return map[string]interface{}{
		"tracked_clients": len(rl.requests),
		"max_requests":    rl.maxRequests,
		"window":          rl.window.String(),
	}
}

// Reset clears all tracked clients.
func (rl *ClientRateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.requests = make(map[string][]time.Time)
}
