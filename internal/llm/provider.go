package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single boundary to an LLM backend. Every AI feature in
// the coach (planning, grading, hints, discussion, report narration) goes
// through this interface.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the completion.
	// When the request carries a Schema, the provider steers the model
	// toward JSON and the returned Content is the validated document.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Purpose labels what a request is for. It selects retry behavior and is
// recorded with every event-store row.
type Purpose string

const (
	PurposePlan   Purpose = "plan"
	PurposeGrade  Purpose = "grade"
	PurposeHint   Purpose = "hint"
	PurposeChat   Purpose = "chat"
	PurposeReport Purpose = "report"
)

// Purposes lists all known purposes, for flag validation.
func Purposes() []Purpose {
	return []Purpose{PurposePlan, PurposeGrade, PurposeHint, PurposeChat, PurposeReport}
}

// Request describes what to send to the LLM.
type Request struct {
	// Purpose labels this call (plan, grade, hint, chat, report).
	// Chat is conversational and is never retried more than once.
	Purpose Purpose

	// System is the system prompt. Sets the coach persona and constraints.
	System string

	// Messages is the conversation history. Most purposes send a single
	// user message; discussion turns send a sliding window.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is the raw text completion.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as tool name for Anthropic,
	// schema name for OpenAI). Kebab-case, e.g. "question-plan".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. Otherwise it is the raw
	// text of the completion.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Text returns the response content as a plain string, for purposes that
// request free text rather than JSON.
func (r *Response) Text() string {
	return string(r.Content)
}

// Usage tracks token consumption. Advisory only: the coach surfaces it in
// the header and in `coach stats` but never gates behavior on it.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Add accumulates another usage sample into u.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
}
