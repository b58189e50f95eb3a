package middleware

import (
	"Fanboard/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

const TraceHeader = "X-Trace-ID"

// TraceMiddleware 沿用调用方传入的 trace id，没有时生成 req-<uuid>
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if traceID := c.GetHeader(TraceHeader); traceID != "" {
			ctx = logger.WithTraceID(ctx, traceID)
		} else {
			ctx = logger.NewTraceContext(ctx, "req")
		}
		traceID := logger.TraceID(ctx)

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(TraceHeader, traceID)
		c.Next()
	}
}
