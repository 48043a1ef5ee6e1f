package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/Chirchirp/Interview-Coach/internal/coach"
	"github.com/Chirchirp/Interview-Coach/internal/grader"
	"github.com/Chirchirp/Interview-Coach/internal/llm"
	"github.com/Chirchirp/Interview-Coach/internal/planner"
	"github.com/Chirchirp/Interview-Coach/internal/report"
)

// Phase is the current stage of an interview session.
type Phase int

const (
	PhaseSetup      Phase = iota // collecting materials and provider config
	PhasePlanning                // plan call in flight or failed
	PhaseAsking                  // current question on screen, awaiting an answer
	PhaseGrading                 // grade call in flight
	PhaseDiscussing              // graded; optional follow-up chat
	PhaseReporting               // interview over, report not yet compiled
	PhaseDone                    // report compiled; export only
)

// String returns the phase name for error messages and logs.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhasePlanning:
		return "Planning"
	case PhaseAsking:
		return "Asking"
	case PhaseGrading:
		return "Grading"
	case PhaseDiscussing:
		return "Discussing"
	case PhaseReporting:
		return "Reporting"
	case PhaseDone:
		return "Done"
	}
	return "Unknown"
}

// Profile holds the candidate materials collected during setup. Immutable
// once the session starts.
type Profile struct {
	ResumeText string
	JobText    string

	// Quick-session fields: interview by field, no documents.
	Field      string
	Experience string
	Focus      []string
	Quick      bool
}

// AnswerRecord is one question's full history: the answer, its grade, and
// any follow-up discussion. Created when the candidate submits an answer;
// mutated only by re-grading or appending discussion turns.
type AnswerRecord struct {
	Index      int // 0-based question index
	Question   planner.Question
	Hint       string
	Answer     string
	Grade      *grader.Result
	Discussion []coach.Turn
	AnsweredAt time.Time
}

// State is one interview session. It is an explicit value passed to every
// Driver method; sessions in the same process are fully isolated. All
// fields marshal to JSON.
type State struct {
	ID        string
	CreatedAt time.Time
	Phase     Phase
	Index     int // current question, 0-based
	Profile   Profile
	Plan      *planner.Plan

	// PendingHint is the latest hint for the current question. It is
	// folded into the Answer Record at submit time, never before, so a
	// hint request cannot alter an already-recorded answer.
	PendingHint string

	Answers []AnswerRecord
	Usage   llm.Usage
	Report  *report.Report
}

// NewState creates a session in the Setup phase.
func NewState(profile Profile) *State {
	return &State{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Phase:     PhaseSetup,
		Profile:   profile,
	}
}

// CurrentQuestion returns the question at the session's index, or a zero
// Question outside the plan.
func (s *State) CurrentQuestion() planner.Question {
	if s.Plan == nil || s.Index < 0 || s.Index >= len(s.Plan.Questions) {
		return planner.Question{}
	}
	return s.Plan.Questions[s.Index]
}

// QuestionNumber returns the 1-based number of the current question.
func (s *State) QuestionNumber() int {
	return s.Index + 1
}

// TotalQuestions returns the planned question count.
func (s *State) TotalQuestions() int {
	if s.Plan == nil {
		return planner.PlanQuestions
	}
	return len(s.Plan.Questions)
}

// Record returns the answer record for question i, or nil if the
// candidate has not submitted an answer for it.
func (s *State) Record(i int) *AnswerRecord {
	for idx := range s.Answers {
		if s.Answers[idx].Index == i {
			return &s.Answers[idx]
		}
	}
	return nil
}

// Graded returns how many answers have a grading result attached.
func (s *State) Graded() int {
	n := 0
	for i := range s.Answers {
		if s.Answers[i].Grade != nil {
			n++
		}
	}
	return n
}

// upsertRecord creates or overwrites the record for the current question.
// A fresh submission resets the grade and consumes the pending hint.
func (s *State) upsertRecord(text string) *AnswerRecord {
	now := time.Now()
	if rec := s.Record(s.Index); rec != nil {
		rec.Question = s.CurrentQuestion()
		rec.Answer = text
		rec.Grade = nil
		rec.Discussion = nil
		if s.PendingHint != "" {
			rec.Hint = s.PendingHint
		}
		rec.AnsweredAt = now
		return rec
	}

	s.Answers = append(s.Answers, AnswerRecord{
		Index:      s.Index,
		Question:   s.CurrentQuestion(),
		Hint:       s.PendingHint,
		Answer:     text,
		AnsweredAt: now,
	})
	return &s.Answers[len(s.Answers)-1]
}
