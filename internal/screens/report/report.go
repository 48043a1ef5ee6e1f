package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Chirchirp/Interview-Coach/internal/report"
	"github.com/Chirchirp/Interview-Coach/internal/router"
	"github.com/Chirchirp/Interview-Coach/internal/screen"
	"github.com/Chirchirp/Interview-Coach/internal/ui/components"
	"github.com/Chirchirp/Interview-Coach/internal/ui/layout"
	"github.com/Chirchirp/Interview-Coach/internal/ui/theme"
)

// ReportScreen displays the final coaching report and offers the text
// export. The report it shows is already compiled and cached on the
// session; this screen never triggers another provider call.
type ReportScreen struct {
	report *report.Report

	scroll    int
	savedPath string
	saveErr   string
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates the report screen over a compiled report.
func New(r *report.Report) *ReportScreen {
	return &ReportScreen{report: r}
}

func (s *ReportScreen) Init() tea.Cmd {
	return nil
}

func (s *ReportScreen) Title() string {
	return "Coaching Report"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "S", Description: "Save as text"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		s.scroll++
	case "s", "S":
		s.save()
	}
	return s, nil
}

// save exports the report next to the working directory with a
// timestamped name.
func (s *ReportScreen) save() {
	name := fmt.Sprintf("interview-report-%s.txt", s.report.GeneratedAt.Format("2006-01-02-1504"))
	path := filepath.Join(reportDir(), name)
	if err := report.SaveText(s.report, path); err != nil {
		s.saveErr = err.Error()
		return
	}
	s.saveErr = ""
	s.savedPath = path
}

// reportDir prefers the working directory and falls back to home.
func reportDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func (s *ReportScreen) View(width, height int) string {
	r := s.report
	if r == nil {
		return ""
	}
	cw := contentWidth(width)

	var b strings.Builder

	// Verdict block.
	scoreStyle := lipgloss.NewStyle().Foreground(theme.ScoreColor(r.Summary.OverallScore)).Bold(true)
	b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(
		scoreStyle.Render(fmt.Sprintf("%d/100 · Grade %s · %s",
			r.Summary.OverallScore, r.Summary.OverallGrade, r.Summary.Tier))))
	b.WriteString("\n")
	if r.Narrative.Headline != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Foreground(theme.Text).Italic(true).Render("“" + r.Narrative.Headline + "”"))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Foreground(theme.TextDim).Render(r.Summary.CompletionLine()))
	b.WriteString("\n\n")

	if len(r.Summary.CategoryScores) > 0 {
		b.WriteString(sectionHeader(cw, "Categories"))
		barWidth := cw
		if barWidth > 56 {
			barWidth = 56
		}
		for _, cs := range r.Summary.CategoryScores {
			bar := components.NewScoreBar(string(cs.Category), cs.Score, 100, barWidth)
			b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, bar.View()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(r.Summary.TopStrengths) > 0 {
		b.WriteString(sectionHeader(cw, "Strengths"))
		for _, str := range r.Summary.TopStrengths {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("  ✓ "))
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 4).Render(str))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(r.Summary.Improvements) > 0 {
		b.WriteString(sectionHeader(cw, "Work on next"))
		for i, imp := range r.Summary.Improvements {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render("  ▸ "))
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 4).Render(
				fmt.Sprintf("%s (seen on %d questions)", imp.Theme, imp.Count)))
			b.WriteString("\n")
			if i < len(r.Narrative.Fixes) && r.Narrative.Fixes[i] != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw-6).
					PaddingLeft(6).Render("Fix: " + r.Narrative.Fixes[i]))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if len(r.Narrative.ActionPlan) > 0 {
		b.WriteString(sectionHeader(cw, "Action plan"))
		for i, step := range r.Narrative.ActionPlan {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("  %d. ", i+1)))
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(step))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if r.Narrative.PersonalNote != "" {
		b.WriteString(sectionHeader(cw, "Coach's note"))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(cw).
			PaddingLeft(2).Render(r.Narrative.PersonalNote))
		b.WriteString("\n")
	}

	if s.saveErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render("⚠ " + s.saveErr))
	} else if s.savedPath != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Width(cw).Render("Saved to " + s.savedPath))
	}

	return s.clip(b.String(), width, height, cw)
}

// clip applies manual scrolling: the report can be taller than the
// content area.
func (s *ReportScreen) clip(content string, width, height int, cw int) string {
	lines := strings.Split(content, "\n")

	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}

	end := s.scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	visible := strings.Join(lines[s.scroll:end], "\n")

	return lipgloss.NewStyle().Padding(0, 2).Render(
		lipgloss.PlaceHorizontal(width-4, lipgloss.Center,
			lipgloss.NewStyle().Width(cw).Render(visible)))
}

func sectionHeader(cw int, label string) string {
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(cw-4, 60)))
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)) +
		"\n" +
		lipgloss.PlaceHorizontal(cw, lipgloss.Center, divider) +
		"\n"
}

func contentWidth(frameWidth int) int {
	w := frameWidth - 8
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
