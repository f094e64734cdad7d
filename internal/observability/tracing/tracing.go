package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type traceID struct{}

// InjectTraceID attaches a fresh trace id and a logger carrying it to ctx
func InjectTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, uuid.New().String())
}

// WithTraceID is InjectTraceID with a caller supplied id, e.g. a request id
// header
func WithTraceID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, traceID{}, id)
	logger := log.With().Str("traceId", id).Logger()
	return logger.WithContext(ctx)
}

// TraceIDFromContext returns the id set by InjectTraceID or WithTraceID
func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceID{}).(string)
	return id
}
