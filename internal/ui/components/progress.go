package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Chirchirp/Interview-Coach/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	filledStr := lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// ScoreBar displays a labeled score as a colored bar, e.g. one STAR
// component of a graded answer. The fill color tracks the score band.
type ScoreBar struct {
	Label string
	Score int
	Max   int
	Width int
}

// NewScoreBar creates a new score bar.
func NewScoreBar(label string, score, max, width int) ScoreBar {
	return ScoreBar{
		Label: label,
		Score: score,
		Max:   max,
		Width: width,
	}
}

// View renders the score bar.
func (s ScoreBar) View() string {
	max := s.Max
	if max <= 0 {
		max = 1
	}
	score := s.Score
	if score < 0 {
		score = 0
	}
	if score > max {
		score = max
	}

	label := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(fmt.Sprintf("%-10s", s.Label))

	valueWidth := len(fmt.Sprintf("  %d/%d", max, max))
	barWidth := s.Width - lipgloss.Width(label) - valueWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * score / max
	empty := barWidth - filled

	color := theme.ScoreColor(score * 100 / max)

	bar := lipgloss.NewStyle().
		Background(color).
		Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().
			Background(theme.Border).
			Render(strings.Repeat(" ", empty))

	value := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d/%d", s.Score, max))

	return label + bar + value
}
