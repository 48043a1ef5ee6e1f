package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Chirchirp/Interview-Coach/internal/ui/theme"
)

// SpinnerTickMsg is sent at short intervals to animate a spinner.
type SpinnerTickMsg time.Time

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a small animated wait indicator with a label.
type Spinner struct {
	Label string
	frame int
}

// NewSpinner creates a spinner with the given label.
func NewSpinner(label string) Spinner {
	return Spinner{Label: label}
}

// Init starts the animation.
func (s Spinner) Init() tea.Cmd {
	return s.tick()
}

// Update advances the animation on each tick.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if _, ok := msg.(SpinnerTickMsg); ok {
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, s.tick()
	}
	return s, nil
}

// View renders the current frame and label.
func (s Spinner) View() string {
	return lipgloss.NewStyle().Foreground(theme.Primary).Render(spinnerFrames[s.frame]) +
		" " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.Label)
}

func (s Spinner) tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}
