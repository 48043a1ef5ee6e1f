package llm

import "context"

// UsageTrackingProvider adds each response's token usage to the sink
// carried on the context, when one is present. Sits inside the retry
// wrapper so retried attempts count individually.
type UsageTrackingProvider struct {
	inner Provider
}

// WithUsageTracking wraps a provider with context-sink usage accounting.
func WithUsageTracking(inner Provider) *UsageTrackingProvider {
	return &UsageTrackingProvider{inner: inner}
}

// Generate forwards the call and accumulates usage on success.
func (u *UsageTrackingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := u.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if sink := usageSinkFrom(ctx); sink != nil {
		sink.Add(resp.Usage)
	}
	return resp, nil
}

// ModelID returns the wrapped provider's model identifier.
func (u *UsageTrackingProvider) ModelID() string {
	return u.inner.ModelID()
}
