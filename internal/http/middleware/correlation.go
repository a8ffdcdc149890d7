package middleware

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/contactbook-backend/internal/platform/ctxutil"
)

const (
	HeaderRequestID = "X-Request-Id"
	HeaderTraceID   = "X-Trace-Id"

	maxRequestIDLen = 128
)

// Correlate assigns every request a request id (the caller's X-Request-Id when
// it is usable) and, when tracing is on, surfaces the active trace id.
func Correlate() gin.HandlerFunc {
	return func(c *gin.Context) {
		corr := ctxutil.Correlation{RequestID: inboundRequestID(c.GetHeader(HeaderRequestID))}
		if corr.RequestID == "" {
			corr.RequestID = uuid.NewString()
		}
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			corr.TraceID = sc.TraceID().String()
			c.Writer.Header().Set(HeaderTraceID, corr.TraceID)
		}
		c.Writer.Header().Set(HeaderRequestID, corr.RequestID)
		c.Request = c.Request.WithContext(ctxutil.WithCorrelation(c.Request.Context(), corr))
		c.Next()
	}
}

func inboundRequestID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxRequestIDLen {
		return ""
	}
	for _, r := range raw {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return ""
		}
	}
	return raw
}
