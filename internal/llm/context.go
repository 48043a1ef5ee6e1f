package llm

import "context"

type contextKey string

const (
	sessionKey   contextKey = "llm_session"
	usageSinkKey contextKey = "llm_usage_sink"
)

// WithSession attaches a session ID to the context so event logging can
// group calls by coaching session.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

// SessionFrom extracts the session ID from the context. Returns "" for
// calls made outside a session (e.g. `coach llm` probes).
func SessionFrom(ctx context.Context) string {
	if v, ok := ctx.Value(sessionKey).(string); ok {
		return v
	}
	return ""
}

// WithUsageSink attaches a cumulative usage counter to the context. Every
// call made under this context adds its token usage to the sink.
func WithUsageSink(ctx context.Context, sink *Usage) context.Context {
	return context.WithValue(ctx, usageSinkKey, sink)
}

func usageSinkFrom(ctx context.Context) *Usage {
	if v, ok := ctx.Value(usageSinkKey).(*Usage); ok {
		return v
	}
	return nil
}
