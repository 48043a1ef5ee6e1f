package grader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/Chirchirp/Interview-Coach/internal/llm"
)

// Service evaluates interview answers.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an answer grading service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type gradeOutput struct {
	Score            *float64    `json:"score"`
	Grade            string      `json:"grade"`
	StarScores       *starOutput `json:"star_scores"`
	WhatWorked       []string    `json:"what_worked"`
	WhatMissed       []string    `json:"what_missed"`
	CoachReaction    string      `json:"coach_reaction"`
	ModelAnswer      string      `json:"model_answer"`
	FollowUpQuestion string      `json:"follow_up_question"`
	Encouragement    string      `json:"encouragement"`
}

type starOutput struct {
	Situation *float64 `json:"situation"`
	Task      *float64 `json:"task"`
	Action    *float64 `json:"action"`
	Result    *float64 `json:"result"`
}

// Grade evaluates one answer. The total score and letter grade are
// recomputed from the STAR sub-scores; the model's own score and grade
// fields steer generation but are never trusted.
func (s *Service) Grade(ctx context.Context, input Input) (*Result, error) {
	req := llm.Request{
		Purpose: llm.PurposeGrade,
		System:  gradeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGradeUserMessage(input)},
		},
		Schema:      GradeSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("grade answer: %w", err)
	}

	return parseResult(resp.Content)
}

func parseResult(content json.RawMessage) (*Result, error) {
	var out gradeOutput
	if err := json.Unmarshal(content, &out); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: content, Err: fmt.Errorf("parse grade response: %w", err)}
	}
	if out.StarScores == nil {
		return nil, &llm.ErrInvalidResponse{Content: content, Err: errors.New("missing star_scores")}
	}

	star := STARScores{}
	for _, sub := range []struct {
		name  string
		value *float64
		dst   *int
	}{
		{"situation", out.StarScores.Situation, &star.Situation},
		{"task", out.StarScores.Task, &star.Task},
		{"action", out.StarScores.Action, &star.Action},
		{"result", out.StarScores.Result, &star.Result},
	} {
		if sub.value == nil {
			return nil, &llm.ErrInvalidResponse{Content: content, Err: fmt.Errorf("star_scores missing %s", sub.name)}
		}
		*sub.dst = clampSubScore(*sub.value)
	}

	total := star.Total()
	return &Result{
		Score:         total,
		Grade:         LetterFor(total),
		STAR:          star,
		WhatWorked:    out.WhatWorked,
		WhatMissed:    out.WhatMissed,
		CoachReaction: out.CoachReaction,
		ModelAnswer:   out.ModelAnswer,
		FollowUp:      out.FollowUpQuestion,
		Encouragement: out.Encouragement,
	}, nil
}

func clampSubScore(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > 25 {
		return 25
	}
	return n
}
