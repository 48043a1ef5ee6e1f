package report

import (
	"time"

	"github.com/Chirchirp/Interview-Coach/internal/grader"
	"github.com/Chirchirp/Interview-Coach/internal/planner"
)

// Answer is one question's outcome carried into report compilation.
// Grade is nil when the question was asked but never successfully graded.
type Answer struct {
	Index      int // 1-based question number
	Question   planner.Question
	AnswerText string
	Grade      *grader.Result
}

// Summary is the deterministic aggregation of a session. Same answers in,
// identical summary out; no LLM involved.
type Summary struct {
	OverallScore   int
	OverallGrade   string
	Tier           string
	Completed      int
	Planned        int
	CategoryScores []CategoryScore
	TopStrengths   []string
	Improvements   []Improvement
}

// CategoryScore is the mean score across a category's graded answers.
type CategoryScore struct {
	Category planner.Category
	Score    int
}

// Improvement is a recurring gap across answers.
type Improvement struct {
	Theme     string
	Count     int
	Questions []int // 1-based indexes of the answers citing it
}

// Narrative is the LLM-written layer of the report: everything prose,
// nothing numeric.
type Narrative struct {
	Headline     string
	Fixes        []string // one per Summary improvement, same order
	ActionPlan   []string // exactly ActionPlanSteps entries
	PersonalNote string
}

// Report is the complete session report: deterministic summary, narrated
// prose, and the per-question record behind both.
type Report struct {
	Summary     Summary
	Narrative   Narrative
	Answers     []Answer
	GeneratedAt time.Time
}

// ActionPlanSteps is the fixed length of a report's action plan.
const ActionPlanSteps = 4

// TierFor maps an overall score to a readiness tier.
func TierFor(score int) string {
	switch {
	case score >= 85:
		return "Interview Ready"
	case score >= 70:
		return "Almost There"
	case score >= 50:
		return "Needs Practice"
	default:
		return "Significant Work Needed"
	}
}
