package middleware

import (
	"strconv"
	"time"

	"shuttle/internal/metrics"
	"shuttle/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger logs one line per request and records its latency.
func Logger(m *metrics.Metrics) gin.HandlerFunc {
	if m == nil {
		m = metrics.Default
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Observe(latency.Seconds())

		utils.L().Info("http request",
			zap.String("module", "HTTP"),
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Float64("latency_ms", float64(latency.Microseconds())/1000.0),
			zap.String("ip", c.ClientIP()),
		)
	}
}
