package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MetricsRecorder interface {
	RecordSimulatorRequest(path, status string)
	RecordSimulatorRequestDuration(path string, duration time.Duration)
}

// MetricsMiddleware records per-request counters and latency for the
// simulator's HTTP surface.
func MetricsMiddleware(metrics MetricsRecorder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		status := getStatusLabel(c.Writer.Status())
		metrics.RecordSimulatorRequest(path, status)
		metrics.RecordSimulatorRequestDuration(path, time.Since(start))
	}
}

func getStatusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "unknown"
}
