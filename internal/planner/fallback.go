package planner

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var bankYAML []byte

type bankEntry struct {
	Text  string `yaml:"text"`
	Great string `yaml:"great"`
}

type questionBank struct {
	Questions map[string][]bankEntry `yaml:"questions"`
}

var (
	bankOnce sync.Once
	bank     questionBank
)

func loadBank() questionBank {
	bankOnce.Do(func() {
		if err := yaml.Unmarshal(bankYAML, &bank); err != nil {
			panic(fmt.Sprintf("planner: parse embedded question bank: %v", err))
		}
	})
	return bank
}

// Fallback builds a plan from the built-in question bank when the
// provider cannot produce one. Deterministic: the same role always yields
// the same plan. Repeated categories take bank entries in order.
func Fallback(role string) *Plan {
	roleText := strings.TrimSpace(role)
	if roleText == "" {
		roleText = "this role"
	}

	b := loadBank()
	seq := MaterialsSequence()
	used := make(map[Category]int, len(seq))

	questions := make([]Question, 0, PlanQuestions)
	for i, cat := range seq {
		entries := b.Questions[string(cat)]
		entry := entries[used[cat]]
		used[cat]++

		questions = append(questions, Question{
			ID:                 i + 1,
			Category:           cat,
			Text:               strings.ReplaceAll(entry.Text, "{role}", roleText),
			WhatGreatLooksLike: entry.Great,
			Difficulty:         materialsDifficulties[i],
		})
	}

	return &Plan{
		CandidateName: "Candidate",
		TargetRole:    strings.TrimSpace(role),
		CompanyHints:  "",
		KeyStrengths:  []string{"Prepare specific examples", "Show measurable outcomes", "Use STAR structure"},
		KeyGaps:       []string{"Tailor answers to the role", "Quantify impact", "Be specific"},
		OpeningMessage: "Welcome! I'm Coach Alex, and I'll be running your practice interview today. " +
			"We'll work through ten questions covering the areas interviewers care about most. " +
			"Take your time with each answer, and remember: specific stories beat general claims.",
		Questions: questions,
	}
}
