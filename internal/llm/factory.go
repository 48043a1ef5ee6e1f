package llm

import (
	"context"
	"fmt"

	"github.com/Chirchirp/Interview-Coach/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry, rate-limit and logging
// middleware. eventRepo may be nil to skip event logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.LLMEventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "groq":
		base, err = NewGroqProvider(cfg.Groq)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "ollama":
		base, err = NewOllamaProvider(cfg.Ollama)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → rate limit → usage → logging → base.
	// Each retry attempt re-acquires a limiter token, is logged, and counts
	// toward the session's usage sink.
	wrapped := base
	if eventRepo != nil {
		wrapped = WithLogging(wrapped, eventRepo)
	}
	wrapped = WithUsageTracking(wrapped)
	wrapped = WithRateLimit(wrapped, cfg.RateLimit)
	wrapped = WithRetry(wrapped, cfg.Retry)

	return wrapped, nil
}

// Verifier is implemented by providers that can check credentials and
// reachability before a session starts. Ollama checks the daemon's tag
// list; the cloud providers issue a models list or a one-token
// completion.
type Verifier interface {
	Verify(ctx context.Context) error
}

// Warmer is implemented by providers that benefit from preloading the
// model before the first real call.
type Warmer interface {
	Warmup(ctx context.Context) error
}

// VerifyProvider runs the provider's reachability check when it has one.
// Middleware wrappers are unwrapped first.
func VerifyProvider(ctx context.Context, p Provider) error {
	if v, ok := unwrapProvider(p).(Verifier); ok {
		return v.Verify(ctx)
	}
	return nil
}

// WarmupProvider preloads the model when the provider supports it.
func WarmupProvider(ctx context.Context, p Provider) error {
	if w, ok := unwrapProvider(p).(Warmer); ok {
		return w.Warmup(ctx)
	}
	return nil
}

// unwrapProvider strips middleware decorators down to the base provider.
func unwrapProvider(p Provider) Provider {
	for {
		switch v := p.(type) {
		case *RetryProvider:
			p = v.inner
		case *RateLimitProvider:
			p = v.inner
		case *UsageTrackingProvider:
			p = v.inner
		case *LoggingProvider:
			p = v.inner
		default:
			return p
		}
	}
}
