package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/credential-service/internal/infrastructure/observability"
)

// Metrics records request count and latency per matched route.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
