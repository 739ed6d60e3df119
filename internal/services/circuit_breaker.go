package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// Breaker names, one per upstream host.
const (
	BreakerStats     = "stats"
	BreakerHeadshots = "headshots"
)

// CircuitBreakerService guards calls to the NBA upstreams. Each host gets
// its own breaker so a stats.nba.com outage does not block headshot
// fetches from the CDN.
type CircuitBreakerService struct {
	breakers map[string]*gobreaker.CircuitBreaker
	logger   *logrus.Logger
}

func NewCircuitBreakerService(maxRequests int, timeout time.Duration, logger *logrus.Logger) *CircuitBreakerService {
	settings := gobreaker.Settings{
		Name:        "external-api",
		MaxRequests: uint32(maxRequests),
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"breaker":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	breakers := map[string]*gobreaker.CircuitBreaker{
		BreakerStats:     gobreaker.NewCircuitBreaker(namedSettings(settings, BreakerStats)),
		BreakerHeadshots: gobreaker.NewCircuitBreaker(namedSettings(settings, BreakerHeadshots)),
	}

	return &CircuitBreakerService{
		breakers: breakers,
		logger:   logger,
	}
}

func namedSettings(base gobreaker.Settings, name string) gobreaker.Settings {
	base.Name = name
	return base
}

// Execute wraps a call with the named breaker. An unknown name runs the
// call unprotected so a wiring mistake degrades instead of breaking.
func (cb *CircuitBreakerService) Execute(name string, fn func() (interface{}, error)) (interface{}, error) {
	breaker, exists := cb.breakers[name]
	if !exists {
		cb.logger.WithFields(logrus.Fields{
			"component": "circuit_breaker",
			"breaker":   name,
		}).Warn("No circuit breaker found, executing without protection")
		return fn()
	}

	return breaker.Execute(fn)
}

// GetState returns the current state of the named breaker.
func (cb *CircuitBreakerService) GetState(name string) gobreaker.State {
	if breaker, exists := cb.breakers[name]; exists {
		return breaker.State()
	}
	return gobreaker.StateClosed
}

// GetCounts returns the request counts of the named breaker.
func (cb *CircuitBreakerService) GetCounts(name string) gobreaker.Counts {
	if breaker, exists := cb.breakers[name]; exists {
		return breaker.Counts()
	}
	return gobreaker.Counts{}
}

// States reports every breaker state keyed by name, for health checks.
func (cb *CircuitBreakerService) States() map[string]string {
	states := make(map[string]string, len(cb.breakers))
	for name, breaker := range cb.breakers {
		states[name] = breaker.State().String()
	}
	return states
}
