package llm

import "fmt"

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider targets Groq's OpenAI-compatible API. The underlying SDK
// client is reused; only the base URL differs.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	inner := newOpenAICompatible("groq", OpenAIConfig{
		APIKey:  cfg.APIKey,
		BaseURL: groqBaseURL,
	}, cfg.Model)

	return &GroqProvider{OpenAIProvider: inner}, nil
}
