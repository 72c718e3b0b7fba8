package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/metrics"
)

// HTTPMetrics records per-route request counts and latency.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method, status).Inc()
		metrics.HTTPLatency.WithLabelValues(c.Request.Method, route, status).
			Observe(time.Since(start).Seconds())
	}
}
