package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Chirchirp/Interview-Coach/internal/llm"
)

// Service narrates compiled summaries.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a report narration service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type narrativeOutput struct {
	Headline     string   `json:"headline"`
	Fixes        []string `json:"fixes"`
	ActionPlan   []string `json:"action_plan"`
	PersonalNote string   `json:"personal_note"`
}

// Narrate asks the LLM to write the report's prose layer. Callers cache
// the result on the session: a report is narrated at most once. On error,
// substitute FallbackNarrative so the report is still available.
func (s *Service) Narrate(ctx context.Context, input NarrateInput) (Narrative, error) {
	req := llm.Request{
		Purpose: llm.PurposeReport,
		System:  narrateSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildNarrateUserMessage(input)},
		},
		Schema:      NarrativeSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return Narrative{}, fmt.Errorf("narrate report: %w", err)
	}

	var out narrativeOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Narrative{}, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("parse narrative: %w", err)}
	}
	if len(out.ActionPlan) != ActionPlanSteps {
		return Narrative{}, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("action plan has %d steps, want %d", len(out.ActionPlan), ActionPlanSteps),
		}
	}

	return Narrative{
		Headline:     out.Headline,
		Fixes:        alignFixes(out.Fixes, input.Summary.Improvements),
		ActionPlan:   out.ActionPlan,
		PersonalNote: out.PersonalNote,
	}, nil
}

// alignFixes forces one fix per improvement: extras are dropped, holes
// get a templated fix.
func alignFixes(fixes []string, improvements []Improvement) []string {
	aligned := make([]string, len(improvements))
	for i, imp := range improvements {
		if i < len(fixes) && fixes[i] != "" {
			aligned[i] = fixes[i]
		} else {
			aligned[i] = templatedFix(imp)
		}
	}
	return aligned
}

func templatedFix(imp Improvement) string {
	return fmt.Sprintf("Work on %q: rehearse an answer that addresses it, out loud, before your next session.", imp.Theme)
}

// FallbackNarrative builds a deterministic narrative when the provider
// cannot. Same summary in, same prose out.
func FallbackNarrative(input NarrateInput) Narrative {
	name := input.CandidateName
	if name == "" {
		name = "Candidate"
	}

	headline := fmt.Sprintf("You scored %d/100 across %s: %s.",
		input.Summary.OverallScore, input.Summary.CompletionLine(), input.Summary.Tier)

	fixes := make([]string, len(input.Summary.Improvements))
	for i, imp := range input.Summary.Improvements {
		fixes[i] = templatedFix(imp)
	}

	plan := []string{
		"Re-answer your two lowest-scoring questions out loud, using the full STAR structure.",
		"Write down one measurable result for each story you told and lead with it next time.",
		"Practice the priority improvements above in a timed mock session this week.",
		"Book another practice session and compare your category scores against this report.",
	}

	note := fmt.Sprintf("%s, thank you for putting in the practice today. "+
		"Progress in interviews comes from exactly this kind of deliberate work, and the plan above gives you a concrete next step. Keep going.", name)

	return Narrative{
		Headline:     headline,
		Fixes:        fixes,
		ActionPlan:   plan,
		PersonalNote: note,
	}
}
