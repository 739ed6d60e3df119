package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/shotcharts/internal/services"
)

type HealthHandler struct {
	breakers  *services.CircuitBreakerService
	startedAt time.Time
}

func NewHealthHandler(breakers *services.CircuitBreakerService) *HealthHandler {
	return &HealthHandler{
		breakers:  breakers,
		startedAt: time.Now(),
	}
}

// GetHealth returns basic health status - always returns 200 if server is running
// This is used for basic liveness probes
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "shotcharts-api",
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
		"breakers":  h.breakers.States(),
	})
}
