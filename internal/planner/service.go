package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Chirchirp/Interview-Coach/internal/llm"
)

// Service builds session plans from candidate materials or a bare field.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a plan generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type planOutput struct {
	CandidateName  string           `json:"candidate_name"`
	TargetRole     string           `json:"target_role"`
	CompanyHints   string           `json:"company_hints"`
	KeyStrengths   []string         `json:"key_strengths"`
	KeyGaps        []string         `json:"key_gaps"`
	OpeningMessage string           `json:"opening_message"`
	QuestionPool   []questionOutput `json:"question_pool"`
}

type questionOutput struct {
	ID                 int    `json:"id"`
	Category           string `json:"category"`
	Question           string `json:"question"`
	WhatGreatLooksLike string `json:"what_great_looks_like"`
	Difficulty         string `json:"difficulty"`
}

// FromMaterials generates a plan grounded in the candidate's resume and
// the target job description.
func (s *Service) FromMaterials(ctx context.Context, resume, job string) (*Plan, error) {
	return s.generate(ctx, buildMaterialsUserMessage(resume, job), s.cfg.MaterialsTemperature, MaterialsSequence())
}

// FromField generates a quick-start plan from a field name and experience
// level, without uploaded materials.
func (s *Service) FromField(ctx context.Context, field, experience string, focus []string) (*Plan, error) {
	return s.generate(ctx, buildFieldUserMessage(field, experience, focus), s.cfg.FieldTemperature, FieldSequence())
}

func (s *Service) generate(ctx context.Context, userMsg string, temperature float64, seq []Category) (*Plan, error) {
	req := llm.Request{
		Purpose: llm.PurposePlan,
		System:  planSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      PlanSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, &PlanError{Err: err}
	}

	return parsePlan(resp.Content, seq)
}

// parsePlan decodes and validates a plan document. The category sequence
// is bound by slot position, not by what the model labeled each question:
// the labels steer generation, the sequence is ours.
func parsePlan(content json.RawMessage, seq []Category) (*Plan, error) {
	var out planOutput
	if err := json.Unmarshal(content, &out); err != nil {
		return nil, &PlanError{Err: fmt.Errorf("parse plan response: %w", err)}
	}

	if got := len(out.QuestionPool); got != PlanQuestions {
		return nil, &PlanError{Err: fmt.Errorf("expected %d questions, got %d", PlanQuestions, got)}
	}

	plan := &Plan{
		CandidateName:  strings.TrimSpace(out.CandidateName),
		TargetRole:     strings.TrimSpace(out.TargetRole),
		CompanyHints:   strings.TrimSpace(out.CompanyHints),
		KeyStrengths:   out.KeyStrengths,
		KeyGaps:        out.KeyGaps,
		OpeningMessage: strings.TrimSpace(out.OpeningMessage),
		Questions:      make([]Question, 0, PlanQuestions),
	}
	if plan.CandidateName == "" {
		plan.CandidateName = "Candidate"
	}

	for i, q := range out.QuestionPool {
		text := strings.TrimSpace(q.Question)
		if text == "" {
			return nil, &PlanError{Err: fmt.Errorf("question %d has empty text", i+1)}
		}
		difficulty := Difficulty(q.Difficulty)
		switch difficulty {
		case DifficultyEasy, DifficultyMedium, DifficultyHard:
		default:
			return nil, &PlanError{Err: fmt.Errorf("question %d has unknown difficulty %q", i+1, q.Difficulty)}
		}
		plan.Questions = append(plan.Questions, Question{
			ID:                 i + 1,
			Category:           seq[i],
			Text:               text,
			WhatGreatLooksLike: strings.TrimSpace(q.WhatGreatLooksLike),
			Difficulty:         difficulty,
		})
	}

	return plan, nil
}
