package report

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/Chirchirp/Interview-Coach/internal/grader"
	"github.com/Chirchirp/Interview-Coach/internal/planner"
)

func gradedAnswer(idx, score int, cat planner.Category, worked, missed []string) Answer {
	return Answer{
		Index: idx,
		Question: planner.Question{
			ID:       idx,
			Category: cat,
			Text:     fmt.Sprintf("Question %d?", idx),
		},
		AnswerText: fmt.Sprintf("answer %d", idx),
		Grade: &grader.Result{
			Score:         score,
			Grade:         grader.LetterFor(score),
			WhatWorked:    worked,
			WhatMissed:    missed,
			CoachReaction: "Solid effort.",
			ModelAnswer:   "A model answer.",
		},
	}
}

func TestCompile_OverallScoreRoundsHalfUp(t *testing.T) {
	tests := []struct {
		name      string
		scores    []int
		wantScore int
		wantGrade string
	}{
		{"exact mean", []int{80, 90}, 85, "B"},
		{"rounds .5 up", []int{85, 80}, 83, "B"},
		{"rounds .5 up across band", []int{79, 80}, 80, "B"},
		{"rounds down", []int{70, 70, 71}, 70, "C"},
		{"single answer", []int{62}, 62, "D"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := make([]Answer, 0, len(tt.scores))
			for i, s := range tt.scores {
				answers = append(answers, gradedAnswer(i+1, s, planner.CategoryBehavioral, nil, nil))
			}
			sum := Compile(answers)
			if sum.OverallScore != tt.wantScore {
				t.Errorf("OverallScore = %d, want %d", sum.OverallScore, tt.wantScore)
			}
			if sum.OverallGrade != tt.wantGrade {
				t.Errorf("OverallGrade = %q, want %q", sum.OverallGrade, tt.wantGrade)
			}
		})
	}
}

func TestCompile_EmptyAnswers(t *testing.T) {
	sum := Compile(nil)

	if sum.OverallScore != 0 {
		t.Errorf("OverallScore = %d, want 0", sum.OverallScore)
	}
	if sum.OverallGrade != "F" {
		t.Errorf("OverallGrade = %q, want F", sum.OverallGrade)
	}
	if sum.Tier != "Significant Work Needed" {
		t.Errorf("Tier = %q", sum.Tier)
	}
	if sum.Completed != 0 || sum.Planned != planner.PlanQuestions {
		t.Errorf("Completed/Planned = %d/%d, want 0/%d", sum.Completed, sum.Planned, planner.PlanQuestions)
	}
	if len(sum.CategoryScores) != 0 || len(sum.TopStrengths) != 0 || len(sum.Improvements) != 0 {
		t.Errorf("expected empty aggregates, got %+v", sum)
	}
}

func TestCompile_SkipsUngradedAnswers(t *testing.T) {
	answers := []Answer{
		gradedAnswer(1, 80, planner.CategoryOpener, nil, nil),
		{Index: 2, Question: planner.Question{ID: 2, Category: planner.CategoryBehavioral}, AnswerText: "pending"},
	}

	sum := Compile(answers)
	if sum.Completed != 1 {
		t.Fatalf("Completed = %d, want 1", sum.Completed)
	}
	if sum.OverallScore != 80 {
		t.Errorf("OverallScore = %d, want 80", sum.OverallScore)
	}
	if line := sum.CompletionLine(); line != "1 of 10 questions completed" {
		t.Errorf("CompletionLine() = %q", line)
	}
}

func TestCompile_CategoryScores(t *testing.T) {
	answers := []Answer{
		gradedAnswer(1, 80, planner.CategoryBehavioral, nil, nil),
		gradedAnswer(2, 90, planner.CategoryTechnical, nil, nil),
		gradedAnswer(3, 71, planner.CategoryBehavioral, nil, nil),
	}

	sum := Compile(answers)
	want := []CategoryScore{
		{Category: planner.CategoryBehavioral, Score: 76}, // (80+71)/2 = 75.5
		{Category: planner.CategoryTechnical, Score: 90},
	}
	if !reflect.DeepEqual(sum.CategoryScores, want) {
		t.Errorf("CategoryScores = %+v, want %+v", sum.CategoryScores, want)
	}
}

func TestCompile_TopStrengthsRankByRecurrence(t *testing.T) {
	answers := []Answer{
		gradedAnswer(1, 90, planner.CategoryBehavioral, []string{"Clear structure", "Strong opening"}, nil),
		gradedAnswer(2, 60, planner.CategoryBehavioral, []string{"clear structure", "Good metrics"}, nil),
		gradedAnswer(3, 75, planner.CategoryTechnical, []string{"  Clear   structure ", "Good metrics"}, nil),
		gradedAnswer(4, 70, planner.CategoryTechnical, []string{"Calm delivery"}, nil),
	}

	got := Compile(answers).TopStrengths
	want := []string{"Clear structure", "Good metrics", "Strong opening"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopStrengths = %v, want %v", got, want)
	}
}

func TestCompile_StrengthTieBreaks(t *testing.T) {
	// Equal counts: higher backing score wins, then first occurrence.
	answers := []Answer{
		gradedAnswer(1, 80, planner.CategoryBehavioral, []string{"Gamma", "Delta"}, nil),
		gradedAnswer(2, 90, planner.CategoryBehavioral, []string{"Beta"}, nil),
	}

	got := Compile(answers).TopStrengths
	want := []string{"Beta", "Gamma", "Delta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopStrengths = %v, want %v", got, want)
	}
}

func TestCompile_ImprovementsRankAndCiteQuestions(t *testing.T) {
	answers := []Answer{
		gradedAnswer(1, 70, planner.CategoryBehavioral, nil, []string{"No metrics", "no   METRICS"}),
		gradedAnswer(2, 65, planner.CategoryTechnical, nil, []string{"No metrics", "Weak result"}),
		gradedAnswer(3, 72, planner.CategoryTechnical, nil, []string{"No metrics"}),
	}

	imps := Compile(answers).Improvements
	if len(imps) != 2 {
		t.Fatalf("len(Improvements) = %d, want 2", len(imps))
	}
	if imps[0].Theme != "No metrics" || imps[0].Count != 3 {
		t.Errorf("Improvements[0] = %+v, want No metrics cited 3 times", imps[0])
	}
	if !reflect.DeepEqual(imps[0].Questions, []int{1, 2, 3}) {
		t.Errorf("Questions = %v, want [1 2 3]", imps[0].Questions)
	}
	if imps[1].Theme != "Weak result" || imps[1].Count != 1 {
		t.Errorf("Improvements[1] = %+v", imps[1])
	}
}

func TestCompile_TopThreeOnly(t *testing.T) {
	answers := []Answer{
		gradedAnswer(1, 70, planner.CategoryBehavioral,
			[]string{"s1", "s2", "s3", "s4", "s5"},
			[]string{"m1", "m2", "m3", "m4"}),
	}

	sum := Compile(answers)
	if len(sum.TopStrengths) != 3 {
		t.Errorf("len(TopStrengths) = %d, want 3", len(sum.TopStrengths))
	}
	if len(sum.Improvements) != 3 {
		t.Errorf("len(Improvements) = %d, want 3", len(sum.Improvements))
	}
}

func TestCompile_Idempotent(t *testing.T) {
	answers := []Answer{
		gradedAnswer(1, 85, planner.CategoryOpener, []string{"Clear structure"}, []string{"No metrics"}),
		gradedAnswer(2, 70, planner.CategoryBehavioral, []string{"Good story"}, []string{"No metrics"}),
		{Index: 3, Question: planner.Question{ID: 3, Category: planner.CategoryTechnical}, AnswerText: "pending"},
	}

	first := Compile(answers)
	second := Compile(answers)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Compile is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Interview Ready"},
		{85, "Interview Ready"},
		{84, "Almost There"},
		{70, "Almost There"},
		{69, "Needs Practice"},
		{50, "Needs Practice"},
		{49, "Significant Work Needed"},
		{0, "Significant Work Needed"},
	}
	for _, tt := range tests {
		if got := TierFor(tt.score); got != tt.want {
			t.Errorf("TierFor(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
