package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Chirchirp/Interview-Coach/internal/llm"
	"github.com/Chirchirp/Interview-Coach/internal/planner"
)

// Service provides pre-answer hints and post-answer discussion.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a coaching service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Hint returns a short coaching tip for the question, before the
// candidate answers. Plain text, no schema.
func (s *Service) Hint(ctx context.Context, question planner.Question, resume, job string) (string, error) {
	req := llm.Request{
		Purpose: llm.PurposeHint,
		System:  hintSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildHintUserMessage(question, resume, job)},
		},
		MaxTokens:   s.cfg.HintMaxTokens,
		Temperature: s.cfg.HintTemperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("question hint: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty hint")}
	}
	return text, nil
}

// Discuss continues a post-answer conversation. The last HistoryWindow
// turns go out as real chat messages, always opening with a candidate
// turn; the newest turn must be the candidate's.
func (s *Service) Discuss(ctx context.Context, history []Turn, resume, job string) (string, error) {
	if len(history) == 0 {
		return "", errors.New("empty discussion history")
	}

	window := history
	if len(window) > HistoryWindow {
		window = window[len(window)-HistoryWindow:]
	}

	// Providers require the chat to open with a candidate message, so
	// leading coach turns (the seeded reaction, or whatever the window
	// cut to) move into the system prompt instead.
	var feedback []string
	for len(window) > 0 && window[0].Role == RoleCoach {
		feedback = append(feedback, window[0].Content)
		window = window[1:]
	}
	if len(window) == 0 {
		return "", errors.New("newest discussion turn must be the candidate's")
	}

	messages := make([]llm.Message, 0, len(window))
	for _, turn := range window {
		role := llm.RoleUser
		if turn.Role == RoleCoach {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}

	system := buildChatSystemPrompt(resume, job)
	if len(feedback) > 0 {
		system += "\n\nYour feedback so far on this answer:\n" + strings.Join(feedback, "\n")
	}

	req := llm.Request{
		Purpose:     llm.PurposeChat,
		System:      system,
		Messages:    messages,
		MaxTokens:   s.cfg.ChatMaxTokens,
		Temperature: s.cfg.ChatTemperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("discussion turn: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty reply")}
	}
	return text, nil
}
