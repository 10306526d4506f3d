package logx

import (
	"context"

	"go.uber.org/zap"
)

type ridKey struct{}

// WithRequestID stores the request id for FromContext.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ridKey{}, rid)
}

func RequestID(ctx context.Context) string {
	rid, _ := ctx.Value(ridKey{}).(string)
	return rid
}

// FromContext returns the process logger tagged with the request id, if any.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if rid := RequestID(ctx); rid != "" {
		return L().With("rid", rid)
	}
	return L()
}
