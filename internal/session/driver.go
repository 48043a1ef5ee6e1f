package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Chirchirp/Interview-Coach/internal/coach"
	"github.com/Chirchirp/Interview-Coach/internal/grader"
	"github.com/Chirchirp/Interview-Coach/internal/llm"
	"github.com/Chirchirp/Interview-Coach/internal/planner"
	"github.com/Chirchirp/Interview-Coach/internal/report"
	"github.com/Chirchirp/Interview-Coach/internal/store"
)

// Placeholders for a session started without documents.
const (
	noResumePlaceholder = "No resume provided."
	noJobPlaceholder    = "General interview — no specific role."
)

// Driver runs sessions through their phases. It holds the feature
// services; all session data lives on the State values passed in. Every
// method validates the phase first, and a failed provider call leaves the
// state as it was so the caller can retry without losing answers.
type Driver struct {
	Planner  *planner.Service
	Grader   *grader.Service
	Coach    *coach.Service
	Reporter *report.Service

	// Events records session telemetry. May be nil; event write failures
	// never fail the session.
	Events store.SessionEventRepo
}

// NewDriver wires the feature services over one provider.
func NewDriver(provider llm.Provider, events store.SessionEventRepo) *Driver {
	return &Driver{
		Planner:  planner.NewService(provider, planner.DefaultConfig()),
		Grader:   grader.NewService(provider, grader.DefaultConfig()),
		Coach:    coach.NewService(provider, coach.DefaultConfig()),
		Reporter: report.NewService(provider, report.DefaultConfig()),
		Events:   events,
	}
}

// callCtx tags provider calls with the session ID and routes their token
// usage onto the state's counter.
func (d *Driver) callCtx(ctx context.Context, st *State) context.Context {
	ctx = llm.WithSession(ctx, st.ID)
	return llm.WithUsageSink(ctx, &st.Usage)
}

// Start generates the question plan and moves the session to the first
// question. On failure the session stays in Planning: call Start again to
// retry, or StartWithFallback to use the built-in question bank.
func (d *Driver) Start(ctx context.Context, st *State) error {
	if st.Phase != PhaseSetup && st.Phase != PhasePlanning {
		return &PhaseError{Op: "start the interview", Phase: st.Phase}
	}
	st.Phase = PhasePlanning

	var (
		plan *planner.Plan
		err  error
	)
	cctx := d.callCtx(ctx, st)
	if st.Profile.Quick {
		plan, err = d.Planner.FromField(cctx, st.Profile.Field, st.Profile.Experience, st.Profile.Focus)
	} else {
		resume := st.Profile.ResumeText
		if strings.TrimSpace(resume) == "" {
			resume = noResumePlaceholder
		}
		job := st.Profile.JobText
		if strings.TrimSpace(job) == "" {
			job = noJobPlaceholder
		}
		plan, err = d.Planner.FromMaterials(cctx, resume, job)
	}
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	st.Plan = plan
	st.Index = 0
	st.Phase = PhaseAsking
	d.recordEvent(ctx, st, store.SessionStarted, 0, 0)
	return nil
}

// StartWithFallback starts the session from the built-in question bank
// instead of the provider. Deterministic; cannot fail on provider errors.
func (d *Driver) StartWithFallback(ctx context.Context, st *State) error {
	if st.Phase != PhaseSetup && st.Phase != PhasePlanning {
		return &PhaseError{Op: "start the interview", Phase: st.Phase}
	}

	st.Plan = planner.Fallback(st.Profile.Field)
	st.Index = 0
	st.Phase = PhaseAsking
	d.recordEvent(ctx, st, store.SessionStarted, 0, 0)
	return nil
}

// Hint fetches a coaching tip for the current question. It never advances
// the session and never touches a submitted Answer Record: the tip is
// held on the state until the next submission folds it in.
func (d *Driver) Hint(ctx context.Context, st *State) (string, error) {
	if st.Phase != PhaseAsking {
		return "", &PhaseError{Op: "request a hint", Phase: st.Phase}
	}

	tip, err := d.Coach.Hint(d.callCtx(ctx, st), st.CurrentQuestion(), st.Profile.ResumeText, st.Profile.JobText)
	if err != nil {
		return "", fmt.Errorf("hint failed: %w", err)
	}
	st.PendingHint = tip
	return tip, nil
}

// Submit records the candidate's answer and grades it. On grading failure
// the session returns to Asking with the answer retained, so Retry can
// re-grade without re-entry.
func (d *Driver) Submit(ctx context.Context, st *State, text string) (*grader.Result, error) {
	if st.Phase != PhaseAsking {
		return nil, &PhaseError{Op: "submit an answer", Phase: st.Phase}
	}
	return d.grade(ctx, st, st.upsertRecord(text))
}

// Retry re-grades the already-submitted answer for the current question.
func (d *Driver) Retry(ctx context.Context, st *State) (*grader.Result, error) {
	if st.Phase != PhaseAsking {
		return nil, &PhaseError{Op: "retry grading", Phase: st.Phase}
	}
	rec := st.Record(st.Index)
	if rec == nil {
		return nil, errors.New("no submitted answer to grade")
	}
	return d.grade(ctx, st, rec)
}

func (d *Driver) grade(ctx context.Context, st *State, rec *AnswerRecord) (*grader.Result, error) {
	st.Phase = PhaseGrading

	result, err := d.Grader.Grade(d.callCtx(ctx, st), grader.Input{
		Question: rec.Question,
		Answer:   rec.Answer,
		Resume:   st.Profile.ResumeText,
		Job:      st.Profile.JobText,
	})
	if err != nil {
		st.Phase = PhaseAsking
		return nil, fmt.Errorf("grading failed: %w", err)
	}

	rec.Grade = result
	rec.Discussion = seedDiscussion(result)
	st.Phase = PhaseDiscussing
	return result, nil
}

// seedDiscussion opens the follow-up chat with the coach's reaction, so
// the discussion picks up from the feedback the candidate just read.
func seedDiscussion(result *grader.Result) []coach.Turn {
	opening := strings.TrimSpace(result.CoachReaction)
	if fu := strings.TrimSpace(result.FollowUp); fu != "" {
		if opening != "" {
			opening += " "
		}
		opening += fu
	}
	if opening == "" {
		return nil
	}
	return []coach.Turn{{Role: coach.RoleCoach, Content: opening}}
}

// Discuss sends one follow-up message about the graded answer and appends
// both turns to the record. A failed call appends nothing.
func (d *Driver) Discuss(ctx context.Context, st *State, msg string) (string, error) {
	if st.Phase != PhaseDiscussing {
		return "", &PhaseError{Op: "discuss the answer", Phase: st.Phase}
	}
	rec := st.Record(st.Index)
	if rec == nil || rec.Grade == nil {
		return "", errors.New("no graded answer to discuss")
	}

	history := make([]coach.Turn, 0, len(rec.Discussion)+1)
	history = append(history, rec.Discussion...)
	history = append(history, coach.Turn{Role: coach.RoleCandidate, Content: msg})

	reply, err := d.Coach.Discuss(d.callCtx(ctx, st), history, st.Profile.ResumeText, st.Profile.JobText)
	if err != nil {
		return "", fmt.Errorf("discussion failed: %w", err)
	}

	rec.Discussion = append(rec.Discussion,
		coach.Turn{Role: coach.RoleCandidate, Content: msg},
		coach.Turn{Role: coach.RoleCoach, Content: reply},
	)
	return reply, nil
}

// Next advances to the next question, or to Reporting after the last one.
func (d *Driver) Next(st *State) error {
	if st.Phase != PhaseDiscussing {
		return &PhaseError{Op: "move to the next question", Phase: st.Phase}
	}

	st.PendingHint = ""
	if st.Index >= st.TotalQuestions()-1 {
		st.Phase = PhaseReporting
		return nil
	}
	st.Index++
	st.Phase = PhaseAsking
	return nil
}

// EndEarly cuts the interview short and moves to Reporting. The report
// covers only the questions answered so far.
func (d *Driver) EndEarly(st *State) error {
	if st.Phase != PhaseAsking && st.Phase != PhaseDiscussing {
		return &PhaseError{Op: "end the session", Phase: st.Phase}
	}
	st.PendingHint = ""
	st.Phase = PhaseReporting
	return nil
}

// Finish compiles the session report and narrates it. The narrative is
// produced at most once: a finished session returns the cached report.
// When the provider cannot narrate, a deterministic fallback narrative is
// used so the report is always available.
func (d *Driver) Finish(ctx context.Context, st *State) (*report.Report, error) {
	if st.Phase == PhaseDone && st.Report != nil {
		return st.Report, nil
	}
	if st.Phase != PhaseReporting {
		return nil, &PhaseError{Op: "compile the report", Phase: st.Phase}
	}

	answers := make([]report.Answer, 0, len(st.Answers))
	for i := range st.Answers {
		rec := &st.Answers[i]
		answers = append(answers, report.Answer{
			Index:      rec.Index + 1,
			Question:   rec.Question,
			AnswerText: rec.Answer,
			Grade:      rec.Grade,
		})
	}

	summary := report.Compile(answers)
	input := report.NarrateInput{
		Summary:       summary,
		Answers:       answers,
		Resume:        st.Profile.ResumeText,
		Job:           st.Profile.JobText,
		CandidateName: st.Plan.CandidateName,
		TargetRole:    st.Plan.TargetRole,
	}

	narrative, err := d.Reporter.Narrate(d.callCtx(ctx, st), input)
	if err != nil {
		narrative = report.FallbackNarrative(input)
	}

	st.Report = &report.Report{
		Summary:     summary,
		Narrative:   narrative,
		Answers:     answers,
		GeneratedAt: time.Now(),
	}
	st.Phase = PhaseDone

	kind := store.SessionCompleted
	if summary.Completed < st.TotalQuestions() {
		kind = store.SessionAbandoned
	}
	d.recordEvent(ctx, st, kind, summary.Completed, summary.OverallScore)

	return st.Report, nil
}

func (d *Driver) recordEvent(ctx context.Context, st *State, kind string, answered, score int) {
	if d.Events == nil {
		return
	}
	_ = d.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:         st.ID,
		Kind:              kind,
		QuestionsAnswered: answered,
		OverallScore:      score,
	})
}
