package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestMetrics holds in-memory request metrics
type RequestMetrics struct {
	mu                 sync.RWMutex
	TotalRequests      uint64
	RequestsByEndpoint map[string]uint64
	RequestsByStatus   map[int]uint64
}

var metrics = &RequestMetrics{
	RequestsByEndpoint: make(map[string]uint64),
	RequestsByStatus:   make(map[int]uint64),
}

// GetMetrics returns a copy of the current request metrics
func GetMetrics() RequestMetrics {
	metrics.mu.RLock()
	defer metrics.mu.RUnlock()
	byEndpoint := make(map[string]uint64, len(metrics.RequestsByEndpoint))
	for k, v := range metrics.RequestsByEndpoint {
		byEndpoint[k] = v
	}
	byStatus := make(map[int]uint64, len(metrics.RequestsByStatus))
	for k, v := range metrics.RequestsByStatus {
		byStatus[k] = v
	}
	return RequestMetrics{
		TotalRequests:      metrics.TotalRequests,
		RequestsByEndpoint: byEndpoint,
		RequestsByStatus:   byStatus,
	}
}

// StructuredLoggingMiddleware provides structured request logging with
// latency and updates the in-memory metrics counters.
func StructuredLoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		metrics.mu.Lock()
		metrics.TotalRequests++
		metrics.RequestsByEndpoint[method+" "+path]++
		metrics.RequestsByStatus[statusCode]++
		metrics.mu.Unlock()

		logger.Info("request completed",
			"method", method,
			"path", path,
			"query_params", c.Request.URL.Query().Encode(),
			"status_code", statusCode,
			"latency_ms", latency.Milliseconds(),
			"remote_addr", c.ClientIP(),
		)

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				logger.Error("request error",
					"method", method,
					"path", path,
					"error", err.Error(),
					"latency_ms", latency.Milliseconds(),
				)
			}
		}
	}
}
