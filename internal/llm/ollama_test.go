package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNormalizeOllamaHost(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"localhost:11434", "http://localhost:11434"},
		{"http://localhost:11434", "http://localhost:11434"},
		{"http://localhost:11434/", "http://localhost:11434"},
		{"http://localhost:11434/v1", "http://localhost:11434"},
		{"http://localhost:11434/v1/", "http://localhost:11434"},
		{"https://ollama.internal:8443", "https://ollama.internal:8443"},
		{"  192.168.1.50:11434  ", "http://192.168.1.50:11434"},
	}
	for _, tt := range tests {
		got := NormalizeOllamaHost(tt.input)
		if got != tt.expected {
			t.Errorf("NormalizeOllamaHost(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func newTestOllamaProvider(t *testing.T, handler http.HandlerFunc) *OllamaProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOllamaProvider(OllamaConfig{Host: server.URL, Model: "llama3.1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.http = &http.Client{Timeout: 2 * time.Second}
	return p
}

func TestOllamaVerify_ModelPulled(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("expected /api/tags, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{
				{"name": "llama3.1:latest"},
				{"name": "qwen2.5:7b"},
			},
		})
	}

	p := newTestOllamaProvider(t, handler)
	if err := p.Verify(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOllamaVerify_ExactTagMatch(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{
				{"name": "llama3.1"},
			},
		})
	}

	p := newTestOllamaProvider(t, handler)
	if err := p.Verify(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOllamaVerify_ModelMissing(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{
				{"name": "mistral:7b"},
			},
		})
	}

	p := newTestOllamaProvider(t, handler)
	err := p.Verify(context.Background())
	if err == nil {
		t.Fatal("expected error for missing model")
	}
	var unavail *ErrProviderUnavailable
	if errors.As(err, &unavail) {
		t.Fatalf("missing model is not an availability error: %v", err)
	}
}

func TestOllamaVerify_DaemonDown(t *testing.T) {
	p, err := NewOllamaProvider(OllamaConfig{Host: "http://127.0.0.1:1", Model: "llama3.1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.http = &http.Client{Timeout: 500 * time.Millisecond}

	verifyErr := p.Verify(context.Background())
	if verifyErr == nil {
		t.Fatal("expected error for unreachable daemon")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(verifyErr, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", verifyErr, verifyErr)
	}
}

func TestOllamaWarmup(t *testing.T) {
	var gotBody map[string]string
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("expected /api/generate, got %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}

	p := newTestOllamaProvider(t, handler)
	if err := p.Warmup(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["model"] != "llama3.1" {
		t.Errorf("expected model 'llama3.1', got %q", gotBody["model"])
	}
	if gotBody["keep_alive"] != "30m" {
		t.Errorf("expected keep_alive '30m', got %q", gotBody["keep_alive"])
	}
}

func TestNewOllamaProvider_RequiresHost(t *testing.T) {
	_, err := NewOllamaProvider(OllamaConfig{Model: "llama3.1"})
	if err == nil {
		t.Fatal("expected error for empty host")
	}
}
