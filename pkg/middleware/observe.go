package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meanstack/userapi/pkg/logger"
	"github.com/meanstack/userapi/pkg/metrics"
)

// RequestLogger writes one access line per request through pkg/logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infof("%s %s %d %s ip=%s rid=%s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.ClientIP(), GetRequestID(c))
	}
}

// Metrics records request counts and latency keyed by the matched route template,
// so /users/:id does not explode into one series per id.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
