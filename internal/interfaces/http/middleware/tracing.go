package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// Tracing returns the request tracing middleware chain: otelgin creates a
// span per request, and a trailing handler enriches it with the request ID
// and the user ID once the rest of the chain (including auth) has run. The
// enrichment runs before otelgin ends the span. Returns a pass-through
// handler when tracing is disabled.
func Tracing(cfg TracingConfig) gin.HandlersChain {
	if !cfg.Enabled {
		return gin.HandlersChain{func(c *gin.Context) {
			c.Next()
		}}
	}

	enrich := func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		if requestID := c.GetString(RequestIDContextKey); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if v, exists := c.Get(AuthUserIDKey); exists {
			if userID, ok := v.(uuid.UUID); ok {
				span.SetAttributes(attribute.String("user_id", userID.String()))
			}
		}
	}

	return gin.HandlersChain{otelgin.Middleware(cfg.ServiceName), enrich}
}
