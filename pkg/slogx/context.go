package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

func WithRequestID(ctx context.Context, reqID string) context.Context {
	l := FromContext(ctx)
	return WithContext(ctx, l.With("req_id", reqID))
}

// WithFlowID attaches a registration flow id to the contextual logger so every
// log line emitted while orchestrating that flow carries it.
func WithFlowID(ctx context.Context, flowID string) context.Context {
	l := FromContext(ctx)
	return WithContext(ctx, l.With("flow_id", flowID))
}
