package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Chirchirp/Interview-Coach/internal/llm"
	"github.com/Chirchirp/Interview-Coach/internal/planner"
	"github.com/Chirchirp/Interview-Coach/internal/store"
)

type fakeEventRepo struct {
	events []store.SessionEventData
}

func (f *fakeEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	f.events = append(f.events, data)
	return nil
}

func testDriver(events store.SessionEventRepo, responses ...llm.MockResponse) (*Driver, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return NewDriver(llm.WithUsageTracking(mock), events), mock
}

func planJSON(t *testing.T) json.RawMessage {
	t.Helper()
	seq := planner.MaterialsSequence()
	pool := make([]map[string]any, 0, len(seq))
	for i, cat := range seq {
		pool = append(pool, map[string]any{
			"id":                    i + 1,
			"category":              string(cat),
			"question":              fmt.Sprintf("Planned question %d?", i+1),
			"what_great_looks_like": "Structure and metrics.",
			"difficulty":            "Medium",
		})
	}
	doc := map[string]any{
		"candidate_name":  "Jordan",
		"target_role":     "Senior Backend Engineer",
		"company_hints":   "",
		"key_strengths":   []string{"Distributed systems", "Ownership", "Python"},
		"key_gaps":        []string{"Go", "Kubernetes", "Scale"},
		"opening_message": "Welcome, let's get started.",
		"question_pool":   pool,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal plan fixture: %v", err)
	}
	return data
}

func gradeJSON(t *testing.T, sit, task, act, res float64) json.RawMessage {
	t.Helper()
	doc := map[string]any{
		"score": sit + task + act + res,
		"grade": "B",
		"star_scores": map[string]any{
			"situation": sit, "task": task, "action": act, "result": res,
		},
		"what_worked":        []string{"Clear structure"},
		"what_missed":        []string{"No metrics"},
		"coach_reaction":     "Good story.",
		"model_answer":       "A sharper answer.",
		"follow_up_question": "What was the measurable result?",
		"encouragement":      "Keep going.",
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal grade fixture: %v", err)
	}
	return data
}

func reportJSON(t *testing.T) json.RawMessage {
	t.Helper()
	doc := map[string]any{
		"headline":      "Strong start, quantify more.",
		"fixes":         []string{"Lead with numbers"},
		"action_plan":   []string{"One", "Two", "Three", "Four"},
		"personal_note": "Jordan, keep at it.",
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal report fixture: %v", err)
	}
	return data
}

func materialsProfile() Profile {
	return Profile{
		ResumeText: "5 years backend engineer, Python, distributed systems",
		JobText:    "Senior Backend Engineer, Go, Kubernetes",
	}
}

// startedState returns a session already in Asking, planned from the
// built-in bank so no plan fixture is consumed.
func startedState(t *testing.T, d *Driver) *State {
	t.Helper()
	st := NewState(materialsProfile())
	if err := d.StartWithFallback(context.Background(), st); err != nil {
		t.Fatalf("StartWithFallback: %v", err)
	}
	return st
}

func TestNewState(t *testing.T) {
	st := NewState(materialsProfile())
	if st.ID == "" {
		t.Error("ID should be set")
	}
	if st.Phase != PhaseSetup {
		t.Errorf("Phase = %v, want Setup", st.Phase)
	}
	if st.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStart_Materials(t *testing.T) {
	events := &fakeEventRepo{}
	d, mock := testDriver(events, llm.MockResponse{
		Content: planJSON(t),
		Usage:   llm.Usage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
	})

	st := NewState(materialsProfile())
	if err := d.Start(context.Background(), st); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if st.Phase != PhaseAsking {
		t.Errorf("Phase = %v, want Asking", st.Phase)
	}
	if st.Index != 0 || st.QuestionNumber() != 1 {
		t.Errorf("Index = %d, want 0", st.Index)
	}
	if len(st.Plan.Questions) != planner.PlanQuestions {
		t.Fatalf("plan has %d questions", len(st.Plan.Questions))
	}
	if st.CurrentQuestion().Text == "" {
		t.Error("current question is empty")
	}

	call := mock.LastCall()
	if call.Purpose != llm.PurposePlan {
		t.Errorf("purpose = %q, want plan", call.Purpose)
	}
	if !strings.Contains(call.Messages[0].Content, "distributed systems") {
		t.Error("prompt missing resume text")
	}

	if st.Usage.TotalTokens != 150 {
		t.Errorf("Usage.TotalTokens = %d, want 150", st.Usage.TotalTokens)
	}
	if len(events.events) != 1 || events.events[0].Kind != store.SessionStarted {
		t.Errorf("events = %+v, want one started event", events.events)
	}
	if events.events[0].SessionID != st.ID {
		t.Error("event session ID mismatch")
	}
}

func TestStart_SubstitutesPlaceholdersForMissingMaterials(t *testing.T) {
	d, mock := testDriver(nil, llm.MockResponse{Content: planJSON(t)})

	st := NewState(Profile{})
	if err := d.Start(context.Background(), st); err != nil {
		t.Fatalf("Start: %v", err)
	}

	prompt := mock.LastCall().Messages[0].Content
	if !strings.Contains(prompt, "No resume provided.") {
		t.Error("prompt missing resume placeholder")
	}
	if !strings.Contains(prompt, "General interview") {
		t.Error("prompt missing job placeholder")
	}
}

func TestStart_QuickSessionUsesField(t *testing.T) {
	d, mock := testDriver(nil, llm.MockResponse{Content: planJSON(t)})

	st := NewState(Profile{
		Quick:      true,
		Field:      "Data Analyst",
		Experience: "Mid Level (3-5 yrs)",
		Focus:      []string{"Behavioral", "Technical"},
	})
	if err := d.Start(context.Background(), st); err != nil {
		t.Fatalf("Start: %v", err)
	}

	prompt := mock.LastCall().Messages[0].Content
	if !strings.Contains(prompt, "Data Analyst") {
		t.Error("prompt missing the field")
	}
	if !strings.Contains(prompt, "Mid Level") {
		t.Error("prompt missing the experience level")
	}
}

func TestStart_FailureStaysInPlanning(t *testing.T) {
	d, _ := testDriver(nil, llm.MockResponse{Content: json.RawMessage(`{"question_pool":[]}`)})

	st := NewState(materialsProfile())
	err := d.Start(context.Background(), st)
	if err == nil {
		t.Fatal("expected plan failure")
	}
	var planErr *planner.PlanError
	if !errors.As(err, &planErr) {
		t.Fatalf("expected PlanError, got %v", err)
	}
	if st.Phase != PhasePlanning {
		t.Errorf("Phase = %v, want Planning", st.Phase)
	}
	if st.Plan != nil {
		t.Error("no plan should be attached")
	}

	// The documented recovery: fall back to the question bank.
	if err := d.StartWithFallback(context.Background(), st); err != nil {
		t.Fatalf("StartWithFallback: %v", err)
	}
	if st.Phase != PhaseAsking || len(st.Plan.Questions) != planner.PlanQuestions {
		t.Errorf("fallback did not start the session: phase %v, %d questions", st.Phase, len(st.Plan.Questions))
	}
}

func TestStart_WrongPhase(t *testing.T) {
	d, _ := testDriver(nil)
	st := startedState(t, d)

	err := d.Start(context.Background(), st)
	var perr *PhaseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PhaseError, got %v", err)
	}
	if perr.Phase != PhaseAsking {
		t.Errorf("PhaseError.Phase = %v, want Asking", perr.Phase)
	}
}

func TestHint_CachesTipWithoutAdvancing(t *testing.T) {
	d, mock := testDriver(nil, llm.MockText("Anchor the story in one project."))
	st := startedState(t, d)

	tip, err := d.Hint(context.Background(), st)
	if err != nil {
		t.Fatalf("Hint: %v", err)
	}
	if tip != "Anchor the story in one project." {
		t.Errorf("tip = %q", tip)
	}
	if st.PendingHint != tip {
		t.Error("hint not cached on the state")
	}
	if st.Phase != PhaseAsking || st.Index != 0 {
		t.Error("hint must not advance the session")
	}
	if len(st.Answers) != 0 {
		t.Error("hint must not create answer records")
	}
	if mock.LastCall().Purpose != llm.PurposeHint {
		t.Errorf("purpose = %q, want hint", mock.LastCall().Purpose)
	}
}

func TestSubmit_GradesAndOpensDiscussion(t *testing.T) {
	d, mock := testDriver(nil, llm.MockResponse{Content: gradeJSON(t, 20, 15, 20, 15)})
	st := startedState(t, d)

	result, err := d.Submit(context.Background(), st, "In my last role I led a migration.")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if result.Score != 70 || result.Grade != "C" {
		t.Errorf("score/grade = %d/%s, want 70/C", result.Score, result.Grade)
	}
	if st.Phase != PhaseDiscussing {
		t.Errorf("Phase = %v, want Discussing", st.Phase)
	}

	rec := st.Record(0)
	if rec == nil {
		t.Fatal("no answer record")
	}
	if rec.Answer != "In my last role I led a migration." {
		t.Errorf("recorded answer = %q", rec.Answer)
	}
	if rec.Grade == nil || rec.Grade.Score != 70 {
		t.Error("grade not attached to the record")
	}
	if len(rec.Discussion) != 1 {
		t.Fatalf("discussion seeded with %d turns, want 1", len(rec.Discussion))
	}
	if rec.Discussion[0].Content != "Good story. What was the measurable result?" {
		t.Errorf("seed turn = %q", rec.Discussion[0].Content)
	}
	if mock.LastCall().Purpose != llm.PurposeGrade {
		t.Errorf("purpose = %q, want grade", mock.LastCall().Purpose)
	}
}

func TestSubmit_FoldsPendingHintIntoRecord(t *testing.T) {
	d, _ := testDriver(nil,
		llm.MockText("Use the STAR structure."),
		llm.MockResponse{Content: gradeJSON(t, 20, 20, 20, 20)},
	)
	st := startedState(t, d)

	if _, err := d.Hint(context.Background(), st); err != nil {
		t.Fatalf("Hint: %v", err)
	}
	if _, err := d.Submit(context.Background(), st, "my answer"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if got := st.Record(0).Hint; got != "Use the STAR structure." {
		t.Errorf("record hint = %q", got)
	}
}

func TestSubmit_GradingFailureRetainsAnswer(t *testing.T) {
	// Empty queue: the grade call fails as provider-unavailable.
	d, mock := testDriver(nil)
	st := startedState(t, d)

	_, err := d.Submit(context.Background(), st, "my answer to question three")
	if err == nil {
		t.Fatal("expected grading failure")
	}
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}

	if st.Phase != PhaseAsking {
		t.Errorf("Phase = %v, want Asking (pre-grade)", st.Phase)
	}
	rec := st.Record(0)
	if rec == nil || rec.Answer != "my answer to question three" {
		t.Fatal("submitted answer must be retained")
	}
	if rec.Grade != nil {
		t.Error("no grade should be attached")
	}

	// Retry re-grades the retained answer without re-entry.
	mock.AddResponse(llm.MockResponse{Content: gradeJSON(t, 10, 10, 10, 10)})
	result, err := d.Retry(context.Background(), st)
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if result.Score != 40 {
		t.Errorf("score = %d, want 40", result.Score)
	}
	if st.Phase != PhaseDiscussing {
		t.Errorf("Phase = %v, want Discussing", st.Phase)
	}
	if got := mock.LastCall().Messages[0].Content; !strings.Contains(got, "my answer to question three") {
		t.Error("retry did not grade the retained answer")
	}
}

func TestHint_AfterFailedGradeLeavesRecordUntouched(t *testing.T) {
	d, mock := testDriver(nil)
	st := startedState(t, d)

	if _, err := d.Submit(context.Background(), st, "original answer"); err == nil {
		t.Fatal("expected grading failure")
	}

	mock.AddResponse(llm.MockText("Try quantifying the outcome."))
	if _, err := d.Hint(context.Background(), st); err != nil {
		t.Fatalf("Hint: %v", err)
	}

	rec := st.Record(0)
	if rec.Answer != "original answer" || rec.Hint != "" || rec.Grade != nil {
		t.Errorf("record altered by hint request: %+v", rec)
	}
	if st.PendingHint != "Try quantifying the outcome." {
		t.Error("hint should be pending on the state")
	}
}

func TestRetry_WithoutSubmission(t *testing.T) {
	d, _ := testDriver(nil)
	st := startedState(t, d)

	if _, err := d.Retry(context.Background(), st); err == nil {
		t.Fatal("expected error when nothing was submitted")
	}
}

func TestDiscuss_AppendsBothTurns(t *testing.T) {
	d, mock := testDriver(nil,
		llm.MockResponse{Content: gradeJSON(t, 20, 15, 20, 15)},
		llm.MockText("That's the right instinct. Name the metric next time."),
	)
	st := startedState(t, d)
	if _, err := d.Submit(context.Background(), st, "my answer"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	reply, err := d.Discuss(context.Background(), st, "Was my example strong enough?")
	if err != nil {
		t.Fatalf("Discuss: %v", err)
	}
	if !strings.Contains(reply, "right instinct") {
		t.Errorf("reply = %q", reply)
	}

	rec := st.Record(0)
	if len(rec.Discussion) != 3 {
		t.Fatalf("discussion has %d turns, want 3 (seed + candidate + coach)", len(rec.Discussion))
	}
	if rec.Discussion[1].Content != "Was my example strong enough?" {
		t.Errorf("candidate turn = %q", rec.Discussion[1].Content)
	}

	call := mock.LastCall()
	if call.Purpose != llm.PurposeChat {
		t.Errorf("purpose = %q, want chat", call.Purpose)
	}
	last := call.Messages[len(call.Messages)-1]
	if last.Role != llm.RoleUser || last.Content != "Was my example strong enough?" {
		t.Errorf("last outgoing message = %+v", last)
	}
}

func TestDiscuss_FailureAppendsNothing(t *testing.T) {
	d, _ := testDriver(nil, llm.MockResponse{Content: gradeJSON(t, 20, 15, 20, 15)})
	st := startedState(t, d)
	if _, err := d.Submit(context.Background(), st, "my answer"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	before := len(st.Record(0).Discussion)
	if _, err := d.Discuss(context.Background(), st, "hello?"); err == nil {
		t.Fatal("expected discussion failure")
	}
	if got := len(st.Record(0).Discussion); got != before {
		t.Errorf("discussion grew from %d to %d on failure", before, got)
	}
	if st.Phase != PhaseDiscussing {
		t.Errorf("Phase = %v, want Discussing", st.Phase)
	}
}

func TestNext_AdvancesThroughPlan(t *testing.T) {
	d, mock := testDriver(nil)
	st := startedState(t, d)

	for i := 0; i < planner.PlanQuestions; i++ {
		if st.Index != i {
			t.Fatalf("Index = %d, want %d", st.Index, i)
		}
		mock.AddResponse(llm.MockResponse{Content: gradeJSON(t, 20, 15, 20, 15)})
		if _, err := d.Submit(context.Background(), st, fmt.Sprintf("answer %d", i)); err != nil {
			t.Fatalf("Submit(%d): %v", i, err)
		}
		if err := d.Next(st); err != nil {
			t.Fatalf("Next(%d): %v", i, err)
		}
	}

	if st.Phase != PhaseReporting {
		t.Errorf("Phase = %v, want Reporting after the last question", st.Phase)
	}
	if len(st.Answers) != planner.PlanQuestions {
		t.Errorf("recorded %d answers", len(st.Answers))
	}
}

func TestNext_WrongPhase(t *testing.T) {
	d, _ := testDriver(nil)
	st := startedState(t, d)

	err := d.Next(st)
	var perr *PhaseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PhaseError, got %v", err)
	}
}

func TestEndEarly(t *testing.T) {
	d, _ := testDriver(nil)
	st := startedState(t, d)

	if err := d.EndEarly(st); err != nil {
		t.Fatalf("EndEarly: %v", err)
	}
	if st.Phase != PhaseReporting {
		t.Errorf("Phase = %v, want Reporting", st.Phase)
	}

	if err := d.EndEarly(st); err == nil {
		t.Error("EndEarly should fail outside the interview")
	}
}

func TestFinish_PartialSessionFallbackNarrative(t *testing.T) {
	events := &fakeEventRepo{}
	d, mock := testDriver(events, llm.MockResponse{Content: gradeJSON(t, 20, 15, 20, 15)})
	st := startedState(t, d)

	if _, err := d.Submit(context.Background(), st, "my answer"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := d.EndEarly(st); err != nil {
		t.Fatalf("EndEarly: %v", err)
	}

	// The narrate call fails (queue empty): fallback narrative applies.
	rep, err := d.Finish(context.Background(), st)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if st.Phase != PhaseDone {
		t.Errorf("Phase = %v, want Done", st.Phase)
	}
	if rep.Summary.Completed != 1 || rep.Summary.OverallScore != 70 {
		t.Errorf("summary = %+v", rep.Summary)
	}
	if len(rep.Narrative.ActionPlan) != 4 {
		t.Error("fallback narrative missing action plan")
	}

	// Finished sessions return the cached report, no further calls.
	calls := mock.CallCount()
	again, err := d.Finish(context.Background(), st)
	if err != nil {
		t.Fatalf("Finish (cached): %v", err)
	}
	if again != rep {
		t.Error("report not cached")
	}
	if mock.CallCount() != calls {
		t.Error("cached Finish must not call the provider")
	}

	// started + abandoned (1 of 10).
	if len(events.events) != 2 || events.events[1].Kind != store.SessionAbandoned {
		t.Fatalf("events = %+v", events.events)
	}
	if events.events[1].QuestionsAnswered != 1 || events.events[1].OverallScore != 70 {
		t.Errorf("abandoned event = %+v", events.events[1])
	}
}

func TestFinish_FullSession(t *testing.T) {
	events := &fakeEventRepo{}
	d, mock := testDriver(events)
	st := startedState(t, d)

	for i := 0; i < planner.PlanQuestions; i++ {
		mock.AddResponse(llm.MockResponse{Content: gradeJSON(t, 20, 20, 20, 20)})
		if _, err := d.Submit(context.Background(), st, fmt.Sprintf("answer %d", i)); err != nil {
			t.Fatalf("Submit(%d): %v", i, err)
		}
		if err := d.Next(st); err != nil {
			t.Fatalf("Next(%d): %v", i, err)
		}
	}

	mock.AddResponse(llm.MockResponse{Content: reportJSON(t)})
	rep, err := d.Finish(context.Background(), st)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if rep.Summary.Completed != planner.PlanQuestions {
		t.Errorf("Completed = %d, want %d", rep.Summary.Completed, planner.PlanQuestions)
	}
	if rep.Summary.OverallScore != 80 || rep.Summary.OverallGrade != "B" {
		t.Errorf("overall = %d/%s", rep.Summary.OverallScore, rep.Summary.OverallGrade)
	}
	if rep.Narrative.Headline != "Strong start, quantify more." {
		t.Errorf("narrated headline = %q", rep.Narrative.Headline)
	}

	last := events.events[len(events.events)-1]
	if last.Kind != store.SessionCompleted || last.QuestionsAnswered != planner.PlanQuestions {
		t.Errorf("final event = %+v", last)
	}
}

func TestState_JSONRoundTrip(t *testing.T) {
	d, _ := testDriver(nil, llm.MockResponse{Content: gradeJSON(t, 20, 15, 20, 15)})
	st := startedState(t, d)
	if _, err := d.Submit(context.Background(), st, "my answer"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}

	var restored State
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if restored.ID != st.ID || restored.Phase != st.Phase || restored.Index != st.Index {
		t.Errorf("restored = %+v", restored)
	}
	if len(restored.Answers) != 1 || restored.Answers[0].Answer != "my answer" {
		t.Error("answer record lost in round trip")
	}
	if restored.Answers[0].Grade.Score != 70 {
		t.Error("grade lost in round trip")
	}
}

func TestUsage_AccumulatesAcrossCalls(t *testing.T) {
	d, mock := testDriver(nil, llm.MockResponse{
		Content: planJSON(t),
		Usage:   llm.Usage{InputTokens: 100, OutputTokens: 40, TotalTokens: 140},
	})

	st := NewState(materialsProfile())
	if err := d.Start(context.Background(), st); err != nil {
		t.Fatalf("Start: %v", err)
	}

	mock.AddResponse(llm.MockResponse{
		Content: gradeJSON(t, 20, 15, 20, 15),
		Usage:   llm.Usage{InputTokens: 60, OutputTokens: 30, TotalTokens: 90},
	})
	if _, err := d.Submit(context.Background(), st, "my answer"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := llm.Usage{InputTokens: 160, OutputTokens: 70, TotalTokens: 230}
	if st.Usage != want {
		t.Errorf("Usage = %+v, want %+v", st.Usage, want)
	}
}
