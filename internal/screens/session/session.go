package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Chirchirp/Interview-Coach/internal/router"
	"github.com/Chirchirp/Interview-Coach/internal/screen"
	reportscreen "github.com/Chirchirp/Interview-Coach/internal/screens/report"
	sess "github.com/Chirchirp/Interview-Coach/internal/session"
	"github.com/Chirchirp/Interview-Coach/internal/ui/components"
	"github.com/Chirchirp/Interview-Coach/internal/ui/layout"
)

// Per-call deadlines. The provider middleware retries inside these, so
// they are generous.
const (
	planTimeout   = 2 * time.Minute
	gradeTimeout  = 90 * time.Second
	hintTimeout   = 45 * time.Second
	chatTimeout   = 60 * time.Second
	reportTimeout = 3 * time.Minute
)

// SessionScreen runs the interview itself: it walks the session state
// through its phases and dispatches every provider call off the UI loop.
type SessionScreen struct {
	driver *sess.Driver
	state  *sess.State

	answer  components.TextArea
	chat    components.TextInput
	spinner components.Spinner

	// waiting locks the screen while a driver call is in flight. The
	// call's goroutine owns the state until its message lands, so the
	// header shows the status captured at dispatch.
	waiting      bool
	statusAtCall string

	planFailed bool
	confirmEnd bool
	hintOpen   bool
	modelOpen  bool
	gradeErr   string
	chatErr    string
	flash      string
	errMsg     string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.HeaderStatusProvider = (*SessionScreen)(nil)

// New creates the interview screen over a ready driver and a fresh state.
func New(driver *sess.Driver, state *sess.State) *SessionScreen {
	return &SessionScreen{
		driver: driver,
		state:  state,
		answer: components.NewTextArea("Tell the story. Situation, task, action, result.", 0, 72, 8),
		chat:   components.NewTextInput("Ask the coach anything about this answer...", 500),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(
		s.dispatch("The interviewer is preparing your questions...", s.planCmd()),
		s.answer.Init(),
	)
}

func (s *SessionScreen) Title() string {
	return "Interview"
}

func (s *SessionScreen) HeaderStatus() string {
	if s.waiting {
		return s.statusAtCall
	}
	return s.liveStatus()
}

func (s *SessionScreen) liveStatus() string {
	st := s.state
	if st == nil || st.Plan == nil {
		return ""
	}
	switch st.Phase {
	case sess.PhaseAsking, sess.PhaseGrading, sess.PhaseDiscussing:
		return fmt.Sprintf("Q %d/%d · %d tok", st.QuestionNumber(), st.TotalQuestions(), st.Usage.TotalTokens)
	default:
		return fmt.Sprintf("%d tok", st.Usage.TotalTokens)
	}
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.waiting {
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	if s.planFailed {
		return []layout.KeyHint{
			{Key: "R", Description: "Try again"},
			{Key: "F", Description: "Built-in questions"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.confirmEnd {
		return []layout.KeyHint{
			{Key: "Y", Description: "End and get report"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.state.Phase {
	case sess.PhaseAsking:
		hints := []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Ctrl+T", Description: "Hint"},
		}
		if s.gradeErr != "" {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Retry grade"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "End session"})
	case sess.PhaseDiscussing:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Ask"},
			{Key: "Ctrl+N", Description: "Next question"},
			{Key: "Ctrl+O", Description: "Model answer"},
			{Key: "Esc", Description: "End session"},
		}
	}
	return nil
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" && !s.planFailed {
		return renderError(width, height, s.errMsg)
	}
	if s.planFailed {
		return renderPlanFailed(width, height, s.errMsg)
	}
	if s.waiting {
		return renderWaiting(width, height, s.spinner)
	}
	if s.confirmEnd {
		return renderEndConfirm(width, height, s.state.Graded(), s.state.TotalQuestions())
	}

	switch s.state.Phase {
	case sess.PhaseAsking:
		return s.renderAsking(width, height)
	case sess.PhaseDiscussing:
		return s.renderDiscussing(width, height)
	}
	return renderWaiting(width, height, s.spinner)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		if !s.waiting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case planDoneMsg:
		return s.handlePlanDone(msg)

	case hintMsg:
		return s.handleHint(msg)

	case gradeDoneMsg:
		return s.handleGradeDone(msg)

	case chatDoneMsg:
		return s.handleChatDone(msg)

	case reportDoneMsg:
		return s.handleReportDone(msg)

	case endConfirmedMsg:
		return s.handleEndConfirmed()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToInput(msg)
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.waiting {
		return s, nil
	}

	key := msg.String()

	// Plan failure: retry, fall back, or leave.
	if s.planFailed {
		switch key {
		case "r", "R":
			s.planFailed = false
			s.errMsg = ""
			return s, s.dispatch("The interviewer is preparing your questions...", s.planCmd())
		case "f", "F":
			s.planFailed = false
			s.errMsg = ""
			if err := s.driver.StartWithFallback(context.Background(), s.state); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			return s, s.answer.Focus()
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	// Fatal error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	// End-early confirmation dialog.
	if s.confirmEnd {
		switch key {
		case "y", "Y":
			s.confirmEnd = false
			return s, func() tea.Msg { return endConfirmedMsg{} }
		case "n", "N", "esc":
			s.confirmEnd = false
			return s, nil
		}
		return s, nil
	}

	switch s.state.Phase {
	case sess.PhaseAsking:
		return s.handleAskingKey(msg)
	case sess.PhaseDiscussing:
		return s.handleDiscussingKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleAskingKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.confirmEnd = true
		return s, nil

	case "ctrl+s":
		text := strings.TrimSpace(s.answer.Value())
		if text == "" {
			return s, nil
		}
		return s, s.dispatch("Grading your answer...", s.gradeCmd(text))

	case "ctrl+t":
		return s, s.dispatch("The coach is thinking of a tip...", s.hintCmd())

	case "ctrl+r":
		if s.gradeErr == "" {
			return s, nil
		}
		return s, s.dispatch("Grading your answer...", s.retryCmd())
	}

	var cmd tea.Cmd
	s.answer, cmd = s.answer.Update(msg)
	return s, cmd
}

func (s *SessionScreen) handleDiscussingKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.confirmEnd = true
		return s, nil

	case "enter":
		text := strings.TrimSpace(s.chat.Value())
		if text == "" {
			return s, nil
		}
		return s, s.dispatch("The coach is writing back...", s.chatCmd(text))

	case "ctrl+n":
		return s.advance()

	case "ctrl+o":
		s.modelOpen = !s.modelOpen
		return s, nil
	}

	var cmd tea.Cmd
	s.chat, cmd = s.chat.Update(msg)
	return s, cmd
}

// forwardToInput routes non-key messages (cursor blinks) to whichever
// input is on screen.
func (s *SessionScreen) forwardToInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.waiting || s.state == nil {
		return s, nil
	}
	var cmd tea.Cmd
	switch s.state.Phase {
	case sess.PhaseAsking:
		s.answer, cmd = s.answer.Update(msg)
	case sess.PhaseDiscussing:
		s.chat, cmd = s.chat.Update(msg)
	}
	return s, cmd
}

// advance moves past the current discussion: next question, or the
// report after the last one.
func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	if err := s.driver.Next(s.state); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	if s.state.Phase == sess.PhaseReporting {
		return s, s.dispatch("Compiling your report...", s.finishCmd())
	}

	s.answer.Reset()
	s.chat.SetValue("")
	s.hintOpen = false
	s.modelOpen = false
	s.chatErr = ""
	return s, s.answer.Focus()
}

func (s *SessionScreen) handlePlanDone(msg planDoneMsg) (screen.Screen, tea.Cmd) {
	s.waiting = false
	if msg.Err != nil {
		s.planFailed = true
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	return s, s.answer.Focus()
}

func (s *SessionScreen) handleHint(msg hintMsg) (screen.Screen, tea.Cmd) {
	s.waiting = false
	if msg.Err != nil {
		// A failed hint is not worth an error screen; show it inline.
		s.gradeErr = ""
		s.chatErr = ""
		s.hintOpen = false
		s.errMsg = ""
		s.flash = msg.Err.Error()
		return s, nil
	}
	s.flash = ""
	s.hintOpen = true
	return s, nil
}

func (s *SessionScreen) handleGradeDone(msg gradeDoneMsg) (screen.Screen, tea.Cmd) {
	s.waiting = false
	if msg.Err != nil {
		s.gradeErr = msg.Err.Error()
		return s, s.answer.Focus()
	}
	s.gradeErr = ""
	s.flash = ""
	s.hintOpen = false
	s.chat.SetValue("")
	return s, s.chat.Focus()
}

func (s *SessionScreen) handleChatDone(msg chatDoneMsg) (screen.Screen, tea.Cmd) {
	s.waiting = false
	if msg.Err != nil {
		s.chatErr = msg.Err.Error()
		return s, s.chat.Focus()
	}
	s.chatErr = ""
	s.chat.SetValue("")
	return s, s.chat.Focus()
}

func (s *SessionScreen) handleReportDone(msg reportDoneMsg) (screen.Screen, tea.Cmd) {
	s.waiting = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	next := reportscreen.New(msg.Report)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SessionScreen) handleEndConfirmed() (screen.Screen, tea.Cmd) {
	if err := s.driver.EndEarly(s.state); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, s.dispatch("Compiling your report...", s.finishCmd())
}

// dispatch locks the screen behind the spinner and runs the call.
func (s *SessionScreen) dispatch(label string, cmd tea.Cmd) tea.Cmd {
	s.waiting = true
	s.statusAtCall = s.liveStatus()
	s.spinner = components.NewSpinner(label)
	return tea.Batch(s.spinner.Init(), cmd)
}

func (s *SessionScreen) planCmd() tea.Cmd {
	drv, st := s.driver, s.state
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), planTimeout)
		defer cancel()
		return planDoneMsg{Err: drv.Start(ctx, st)}
	}
}

func (s *SessionScreen) hintCmd() tea.Cmd {
	drv, st := s.driver, s.state
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), hintTimeout)
		defer cancel()
		_, err := drv.Hint(ctx, st)
		return hintMsg{Err: err}
	}
}

func (s *SessionScreen) gradeCmd(text string) tea.Cmd {
	drv, st := s.driver, s.state
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gradeTimeout)
		defer cancel()
		_, err := drv.Submit(ctx, st, text)
		return gradeDoneMsg{Err: err}
	}
}

func (s *SessionScreen) retryCmd() tea.Cmd {
	drv, st := s.driver, s.state
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gradeTimeout)
		defer cancel()
		_, err := drv.Retry(ctx, st)
		return gradeDoneMsg{Err: err}
	}
}

func (s *SessionScreen) chatCmd(text string) tea.Cmd {
	drv, st := s.driver, s.state
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()
		_, err := drv.Discuss(ctx, st, text)
		return chatDoneMsg{Err: err}
	}
}

func (s *SessionScreen) finishCmd() tea.Cmd {
	drv, st := s.driver, s.state
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		rep, err := drv.Finish(ctx, st)
		return reportDoneMsg{Report: rep, Err: err}
	}
}
