package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
)

const RequestIDHeader = "X-Request-ID"

// requestID берет X-Request-ID клиента или генерирует новый и пишет итог запроса в лог
func (c *AvailabilityController) requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx.Set("requestId", requestID)
		ctx.Header(RequestIDHeader, requestID)

		start := time.Now()
		ctx.Next()

		c.logger.Info("http.request", out.LogFields{
			"requestId": requestID,
			"method":    ctx.Request.Method,
			"path":      ctx.FullPath(),
			"status":    ctx.Writer.Status(),
			"latencyMs": time.Since(start).Milliseconds(),
		})
	}
}
