package grader

import "github.com/Chirchirp/Interview-Coach/internal/planner"

// STARScores breaks an answer down by the STAR rubric. Each component is
// worth 0-25 points; the four together determine the total score.
type STARScores struct {
	Situation int
	Task      int
	Action    int
	Result    int
}

// Total sums the four components into a 0-100 score.
func (s STARScores) Total() int {
	return s.Situation + s.Task + s.Action + s.Result
}

// Result is the full evaluation of one answer.
type Result struct {
	Score         int
	Grade         string
	STAR          STARScores
	WhatWorked    []string
	WhatMissed    []string
	CoachReaction string
	ModelAnswer   string
	FollowUp      string
	Encouragement string
}

// Input carries everything the grader needs for one answer.
type Input struct {
	Question planner.Question
	Answer   string
	Resume   string
	Job      string
}

// LetterFor maps a 0-100 score to its letter grade.
func LetterFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
