// Package middleware provides the gin middleware of the HTTP API.
package middleware

import "context"

type contextKey string

const (
	ctxKeyRequestID     contextKey = "request_id"
	ctxKeyCorrelationID contextKey = "correlation_id"
	ctxKeyLocale        contextKey = "locale"
)

// RequestIDFromContext returns the request ID stored by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxKeyRequestID)
}

// CorrelationIDFromContext returns the correlation ID stored by
// CorrelationID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxKeyCorrelationID)
}

// LocaleFromContext returns the locale negotiated by Locale, or "".
func LocaleFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxKeyLocale)
}

// IDsFromContext returns both IDs. It has the shape of clients.IDSource so
// outbound requests carry the IDs of the inbound one.
func IDsFromContext(ctx context.Context) (requestID, correlationID string) {
	return RequestIDFromContext(ctx), CorrelationIDFromContext(ctx)
}

// ContextWithRequestID stores a request ID in ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// ContextWithCorrelationID stores a correlation ID in ctx.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyCorrelationID, id)
}

// ContextWithLocale stores the negotiated locale in ctx.
func ContextWithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, locale)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}

	if s, ok := ctx.Value(key).(string); ok {
		return s
	}

	return ""
}
