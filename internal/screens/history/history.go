package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Chirchirp/Interview-Coach/internal/grader"
	"github.com/Chirchirp/Interview-Coach/internal/router"
	"github.com/Chirchirp/Interview-Coach/internal/screen"
	"github.com/Chirchirp/Interview-Coach/internal/store"
	"github.com/Chirchirp/Interview-Coach/internal/ui/layout"
	"github.com/Chirchirp/Interview-Coach/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []store.SessionSummary
	Err      error
}

// HistoryScreen lists past interview sessions from the event store.
type HistoryScreen struct {
	store    *store.Store
	sessions []store.SessionSummary
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(st *store.Store) *HistoryScreen {
	return &HistoryScreen{
		store:    st,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		if s.store == nil {
			return historyLoadedMsg{}
		}
		sessions, err := s.store.EventRepo().QuerySessionSummaries(
			context.Background(), store.QueryOpts{Limit: 50})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Your first interview starts from the home menu.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.StartedAt.Local().Format("Jan 02, 2006 15:04")

		var outcome string
		switch sess.Kind {
		case store.SessionCompleted:
			outcome = fmt.Sprintf("completed · %d/100", sess.OverallScore)
		case store.SessionAbandoned:
			outcome = fmt.Sprintf("ended early · %d/100", sess.OverallScore)
		default:
			outcome = "unfinished"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %d answered  %s",
			prefix, dateStr, sess.QuestionsAnswered, outcome)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, detail := range sessionDetails(sess) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+detail)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// sessionDetails renders the expanded lines for one session.
func sessionDetails(sess store.SessionSummary) []string {
	details := []string{"session " + sess.SessionID}
	if !sess.EndedAt.IsZero() {
		details = append(details,
			fmt.Sprintf("duration %s", sess.EndedAt.Sub(sess.StartedAt).Round(time.Second)))
	}
	if sess.Kind == store.SessionCompleted || sess.Kind == store.SessionAbandoned {
		details = append(details,
			fmt.Sprintf("overall grade %s", grader.LetterFor(sess.OverallScore)))
	}
	return details
}
