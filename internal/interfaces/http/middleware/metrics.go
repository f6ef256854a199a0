package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hesab/backend/internal/infrastructure/metrics"
)

// HTTPMetrics records request count, latency and in-flight requests. Routes
// are labelled by their pattern via c.FullPath, so /vouchers/:id stays one series.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return func(c *gin.Context) {
		start := time.Now()
		done := m.RequestStarted()
		defer done()

		c.Next()

		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
