package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OllamaProvider targets a local Ollama daemon through its
// OpenAI-compatible surface at <host>/v1. Generation reuses the OpenAI
// SDK client; Verify and Warmup talk to Ollama's native API.
type OllamaProvider struct {
	*OpenAIProvider
	host string
	http *http.Client
}

// NewOllamaProvider creates a provider for a local Ollama daemon.
func NewOllamaProvider(cfg OllamaConfig) (*OllamaProvider, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("ollama host is required")
	}

	host := NormalizeOllamaHost(cfg.Host)

	// Ollama ignores the API key but the SDK requires one.
	inner := newOpenAICompatible("ollama", OpenAIConfig{
		APIKey:  "ollama",
		BaseURL: host + "/v1",
	}, cfg.Model)

	return &OllamaProvider{
		OpenAIProvider: inner,
		host:           host,
		http:           &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// NormalizeOllamaHost canonicalizes a user-supplied daemon address:
// default scheme http, no trailing slash, no /v1 suffix.
func NormalizeOllamaHost(host string) string {
	h := strings.TrimSpace(host)
	if !strings.HasPrefix(h, "http://") && !strings.HasPrefix(h, "https://") {
		h = "http://" + h
	}
	h = strings.TrimRight(h, "/")
	h = strings.TrimSuffix(h, "/v1")
	return strings.TrimRight(h, "/")
}

// Verify probes the daemon's tag list to confirm it is reachable and the
// configured model is pulled. Called once during session setup.
func (p *OllamaProvider) Verify(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.host+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("build tags request: %w", err)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return &ErrProviderUnavailable{Err: fmt.Errorf("ollama at %s: %w", p.host, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ErrProviderUnavailable{Err: fmt.Errorf("ollama at %s: status %d", p.host, resp.StatusCode)}
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return &ErrProviderUnavailable{Err: fmt.Errorf("decode tags: %w", err)}
	}

	for _, m := range tags.Models {
		if m.Name == p.model || strings.SplitN(m.Name, ":", 2)[0] == p.model {
			return nil
		}
	}
	return fmt.Errorf("model %q is not pulled on %s (run: ollama pull %s)", p.model, p.host, p.model)
}

// Warmup asks the daemon to load the model into memory so the first real
// completion doesn't pay the cold-start cost. Best-effort.
func (p *OllamaProvider) Warmup(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"model":      p.model,
		"keep_alive": "30m",
	})
	if err != nil {
		return fmt.Errorf("marshal warmup body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build warmup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return &ErrProviderUnavailable{Err: fmt.Errorf("ollama warmup: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama warmup: status %d", resp.StatusCode)
	}
	return nil
}
