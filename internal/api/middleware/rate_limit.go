package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/shotcharts/internal/services"
	"github.com/jstittsworth/shotcharts/pkg/utils"
)

// RateLimit rejects clients that exceed the sliding-window limit. A nil
// limiter disables limiting.
func RateLimit(limiter *services.ClientRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		if err := limiter.Allow(c.ClientIP()); err != nil {
			utils.SendRateLimited(c, err.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}
