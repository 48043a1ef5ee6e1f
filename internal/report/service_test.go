package report

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Chirchirp/Interview-Coach/internal/llm"
	"github.com/Chirchirp/Interview-Coach/internal/planner"
)

func testSummary() Summary {
	return Summary{
		OverallScore: 78,
		OverallGrade: "C",
		Tier:         "Almost There",
		Completed:    2,
		Planned:      10,
		CategoryScores: []CategoryScore{
			{Category: planner.CategoryBehavioral, Score: 78},
		},
		TopStrengths: []string{"Clear structure"},
		Improvements: []Improvement{
			{Theme: "No metrics", Count: 2, Questions: []int{1, 2}},
			{Theme: "Weak result", Count: 1, Questions: []int{2}},
		},
	}
}

func testNarrateInput() NarrateInput {
	return NarrateInput{
		Summary: testSummary(),
		Answers: []Answer{
			gradedAnswer(1, 80, planner.CategoryBehavioral, nil, []string{"No metrics"}),
			gradedAnswer(2, 76, planner.CategoryBehavioral, nil, []string{"No metrics", "Weak result"}),
		},
		Resume:        "5 years backend engineer",
		Job:           "Senior Backend Engineer",
		CandidateName: "Jordan",
		TargetRole:    "Senior Backend Engineer",
	}
}

func narrativeJSON(t *testing.T, fixes []string, steps []string) json.RawMessage {
	t.Helper()
	out := map[string]any{
		"headline":      "Strong stories, missing numbers.",
		"fixes":         fixes,
		"action_plan":   steps,
		"personal_note": "Jordan, you are closer than you think. Keep practicing.",
	}
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal narrative fixture: %v", err)
	}
	return data
}

func fourSteps() []string {
	return []string{"Step one", "Step two", "Step three", "Step four"}
}

func TestNarrate_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: narrativeJSON(t, []string{"Add numbers to every story", "End every answer with the result"}, fourSteps()),
	})
	svc := NewService(mock, DefaultConfig())

	got, err := svc.Narrate(context.Background(), testNarrateInput())
	if err != nil {
		t.Fatalf("Narrate() error: %v", err)
	}

	if got.Headline != "Strong stories, missing numbers." {
		t.Errorf("Headline = %q", got.Headline)
	}
	if len(got.Fixes) != 2 || got.Fixes[0] != "Add numbers to every story" {
		t.Errorf("Fixes = %v", got.Fixes)
	}
	if len(got.ActionPlan) != ActionPlanSteps {
		t.Errorf("len(ActionPlan) = %d, want %d", len(got.ActionPlan), ActionPlanSteps)
	}
	if !strings.Contains(got.PersonalNote, "Jordan") {
		t.Errorf("PersonalNote = %q, want candidate name", got.PersonalNote)
	}

	call := mock.LastCall()
	if call.Purpose != llm.PurposeReport {
		t.Errorf("Purpose = %q, want %q", call.Purpose, llm.PurposeReport)
	}
	if call.Schema != NarrativeSchema {
		t.Error("expected NarrativeSchema on the request")
	}
	if call.MaxTokens != 1200 || call.Temperature != 0.4 {
		t.Errorf("MaxTokens/Temperature = %d/%v", call.MaxTokens, call.Temperature)
	}
	prompt := call.Messages[0].Content
	for _, want := range []string{
		"CANDIDATE: Jordan",
		"OVERALL: 78/100",
		"2 of 10 questions completed",
		"1. No metrics (missed on 2 questions)",
		"Q1 [Behavioral]",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestNarrate_WrongActionPlanLength(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: narrativeJSON(t, []string{"fix one", "fix two"}, []string{"only", "three", "steps"}),
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Narrate(context.Background(), testNarrateInput())
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestNarrate_MalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Narrate(context.Background(), testNarrateInput())
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestNarrate_ProviderErrorWrapped(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue fails as unavailable
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Narrate(context.Background(), testNarrateInput())
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable in chain, got %v", err)
	}
}

func TestNarrate_AlignsFixesToImprovements(t *testing.T) {
	tests := []struct {
		name  string
		fixes []string
	}{
		{"too few fixes", []string{"Add numbers to every story"}},
		{"too many fixes", []string{"one", "two", "three", "four"}},
		{"empty fix entry", []string{"one", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: narrativeJSON(t, tt.fixes, fourSteps())})
			svc := NewService(mock, DefaultConfig())

			input := testNarrateInput()
			got, err := svc.Narrate(context.Background(), input)
			if err != nil {
				t.Fatalf("Narrate() error: %v", err)
			}
			if len(got.Fixes) != len(input.Summary.Improvements) {
				t.Fatalf("len(Fixes) = %d, want %d", len(got.Fixes), len(input.Summary.Improvements))
			}
			for i, fix := range got.Fixes {
				if fix == "" {
					t.Errorf("Fixes[%d] is empty", i)
				}
			}
		})
	}
}

func TestFallbackNarrative(t *testing.T) {
	input := testNarrateInput()

	got := FallbackNarrative(input)
	if len(got.ActionPlan) != ActionPlanSteps {
		t.Errorf("len(ActionPlan) = %d, want %d", len(got.ActionPlan), ActionPlanSteps)
	}
	if len(got.Fixes) != len(input.Summary.Improvements) {
		t.Errorf("len(Fixes) = %d, want %d", len(got.Fixes), len(input.Summary.Improvements))
	}
	if !strings.Contains(got.Headline, "78/100") || !strings.Contains(got.Headline, "Almost There") {
		t.Errorf("Headline = %q", got.Headline)
	}
	if !strings.Contains(got.PersonalNote, "Jordan") {
		t.Errorf("PersonalNote = %q, want candidate name", got.PersonalNote)
	}
	if !strings.Contains(got.Fixes[0], "No metrics") {
		t.Errorf("Fixes[0] = %q, want the improvement theme", got.Fixes[0])
	}

	again := FallbackNarrative(input)
	if !reflect.DeepEqual(got, again) {
		t.Error("FallbackNarrative is not deterministic")
	}
}

func TestFallbackNarrative_DefaultsCandidateName(t *testing.T) {
	input := testNarrateInput()
	input.CandidateName = ""

	got := FallbackNarrative(input)
	if !strings.Contains(got.PersonalNote, "Candidate") {
		t.Errorf("PersonalNote = %q, want default name", got.PersonalNote)
	}
}
