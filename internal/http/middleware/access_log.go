package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactbook-backend/internal/platform/ctxutil"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

// AccessLog writes one line per request once the handler chain is done.
// Probe routes are logged at debug so they do not drown the contact traffic.
func AccessLog(log *logger.Logger, quiet ...string) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("component", "AccessLog")
	skip := make(map[string]struct{}, len(quiet))
	for _, p := range quiet {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"route", routeOf(c),
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if corr, ok := ctxutil.GetCorrelation(ctx); ok {
			fields = append(fields, "request_id", corr.RequestID)
			if corr.TraceID != "" {
				fields = append(fields, "trace_id", corr.TraceID)
			}
		}
		if caller := ctxutil.CallerID(ctx); caller != "" {
			fields = append(fields, "caller_id", caller)
		}
		if last := c.Errors.Last(); last != nil {
			fields = append(fields, "error", last.Err)
		}

		if _, ok := skip[c.Request.URL.Path]; ok && status < 400 {
			log.Debug("request", fields...)
			return
		}
		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// routeOf prefers the matched pattern so ids do not explode label and log cardinality.
func routeOf(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return "unmatched"
}
