package planner

// Category classifies an interview question.
type Category string

const (
	CategoryOpener       Category = "Opener"
	CategoryBehavioral   Category = "Behavioral"
	CategoryTechnical    Category = "Technical"
	CategorySituational  Category = "Situational"
	CategoryLeadership   Category = "Leadership"
	CategoryCultureFit   Category = "Culture Fit"
	CategoryGapChallenge Category = "Gap Challenge"
	CategoryMotivation   Category = "Motivation"
	CategoryClosing      Category = "Closing"
)

// Difficulty is the expected challenge level of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Question is one planned interview question.
type Question struct {
	ID                 int
	Category           Category
	Text               string
	WhatGreatLooksLike string
	Difficulty         Difficulty
}

// Plan is a full session plan: candidate analysis plus ten questions in
// a fixed category order.
type Plan struct {
	CandidateName  string
	TargetRole     string
	CompanyHints   string
	KeyStrengths   []string
	KeyGaps        []string
	OpeningMessage string
	Questions      []Question
}

// MaterialsSequence is the category order for a resume-driven session.
// Slot 9 probes the candidate's weakest gap.
func MaterialsSequence() []Category {
	return []Category{
		CategoryOpener,
		CategoryBehavioral,
		CategoryBehavioral,
		CategoryTechnical,
		CategoryTechnical,
		CategorySituational,
		CategoryLeadership,
		CategoryCultureFit,
		CategoryGapChallenge,
		CategoryClosing,
	}
}

// FieldSequence is the category order for a quick-start session. With no
// resume there is no gap to challenge, so slot 9 asks about motivation.
func FieldSequence() []Category {
	return []Category{
		CategoryOpener,
		CategoryBehavioral,
		CategoryBehavioral,
		CategoryTechnical,
		CategoryTechnical,
		CategorySituational,
		CategoryLeadership,
		CategoryCultureFit,
		CategoryMotivation,
		CategoryClosing,
	}
}

// PlanQuestions is the fixed number of questions in every session plan.
const PlanQuestions = 10
