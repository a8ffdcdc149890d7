package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactbook-backend/internal/observability"
)

// Instrument records request count, latency and in-flight gauge per route.
// Scrapes of the metrics endpoint itself are not counted.
func Instrument(m *observability.Metrics, metricsPath string) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.URL.Path == metricsPath {
			c.Next()
			return
		}
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		start := time.Now()
		c.Next()
		m.ObserveAPI(c.Request.Method, routeOf(c), strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
