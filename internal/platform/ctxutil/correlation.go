package ctxutil

import "context"

type correlationKey struct{}

// Correlation ties log lines and responses for one request together.
type Correlation struct {
	RequestID string
	TraceID   string
}

func WithCorrelation(ctx context.Context, corr Correlation) context.Context {
	return context.WithValue(Default(ctx), correlationKey{}, corr)
}

func GetCorrelation(ctx context.Context) (Correlation, bool) {
	if ctx == nil {
		return Correlation{}, false
	}
	corr, ok := ctx.Value(correlationKey{}).(Correlation)
	return corr, ok
}

func RequestID(ctx context.Context) string {
	corr, _ := GetCorrelation(ctx)
	return corr.RequestID
}
