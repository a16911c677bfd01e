package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/alaqidah-service/internal/adapters/clients"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/logging"
)

const (
	// HeaderRequestID identifies a single request.
	HeaderRequestID = clients.HeaderRequestID

	// HeaderCorrelationID identifies a transaction spanning several
	// services. It is propagated from upstream when present.
	HeaderCorrelationID = clients.HeaderCorrelationID

	// ContextKeyRequestID and ContextKeyCorrelationID are the gin keys.
	ContextKeyRequestID     = "request_id"
	ContextKeyCorrelationID = "correlation_id"

	// maxIDLength bounds client supplied IDs before they reach logs.
	maxIDLength = 128
)

type idMiddlewareConfig struct {
	headerName string
	contextKey string
	withValue  func(ctx context.Context, id string) context.Context
	withLogger func(ctx context.Context, id string) context.Context
}

// RequestID extracts X-Request-ID or generates a UUID v4, echoes it in the
// response and adds it to the request context and logger.
func RequestID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderRequestID,
		contextKey: ContextKeyRequestID,
		withValue:  ContextWithRequestID,
		withLogger: logging.WithRequestID,
	})
}

// CorrelationID does for X-Correlation-ID what RequestID does for
// X-Request-ID.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderCorrelationID,
		contextKey: ContextKeyCorrelationID,
		withValue:  ContextWithCorrelationID,
		withLogger: logging.WithCorrelationID,
	})
}

func createIDMiddleware(cfg idMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.headerName)
		if id == "" || len(id) > maxIDLength {
			id = uuid.NewString()
		}

		c.Set(cfg.contextKey, id)
		c.Header(cfg.headerName, id)

		ctx := cfg.withValue(c.Request.Context(), id)
		ctx = cfg.withLogger(ctx, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRequestID returns the request ID of c, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID of c, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}
