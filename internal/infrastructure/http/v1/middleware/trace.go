package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "stockbook/internal/core/context"
)

// Header names for request correlation.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// Trace installs a TraceContext on every request and echoes the IDs
// back in response headers. An incoming X-Request-ID is honored so
// clients can correlate retries.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		trace := appctx.NewTraceContext()

		if incoming := c.GetHeader(HeaderRequestID); incoming != "" {
			trace.RequestID = incoming
		}
		if incoming := c.GetHeader(HeaderTraceID); incoming != "" {
			trace.TraceID = incoming
		}

		ctx := appctx.WithTrace(c.Request.Context(), trace)
		c.Request = c.Request.WithContext(ctx)

		c.Header(HeaderRequestID, trace.RequestID)
		c.Header(HeaderTraceID, trace.TraceID)

		c.Next()
	}
}
