package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Chirchirp/Interview-Coach/internal/coach"
	"github.com/Chirchirp/Interview-Coach/internal/grader"
	"github.com/Chirchirp/Interview-Coach/internal/ui/components"
	"github.com/Chirchirp/Interview-Coach/internal/ui/theme"
)

// transcriptWindow caps how many discussion turns are rendered; older
// turns scroll off the top but stay on the record.
const transcriptWindow = 8

// contentWidth returns the inner width used by the interview views.
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

func renderWaiting(width, height int, sp components.Spinner) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, sp.View())
}

func renderError(width, height int, msg string) string {
	content := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("⚠ "+msg) +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Press any key to go back.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderPlanFailed(width, height int, msg string) string {
	cw := contentWidth(width)

	body := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("The interviewer couldn't prepare your questions.") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Render(msg) +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render("R") +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(" try again    ") +
		lipgloss.NewStyle().Foreground(theme.Text).Render("F") +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(" use the built-in question set    ") +
		lipgloss.NewStyle().Foreground(theme.Text).Render("Esc") +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(" back")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Card.Width(cw).Render(body))
}

func renderEndConfirm(width, height, graded, total int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("End the interview after %d of %d questions?", graded, total)) +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Your report will cover only the questions you answered.") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Y") +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(" end and get the report    ") +
		lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("N") +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(" keep going")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Card.Render(body))
}

func (s *SessionScreen) renderAsking(width, height int) string {
	cw := contentWidth(width)
	st := s.state
	q := st.CurrentQuestion()

	var b strings.Builder

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", st.QuestionNumber(), st.TotalQuestions()),
		float64(st.Index)/float64(st.TotalQuestions()),
		false, cw)
	b.WriteString(progress.View())
	b.WriteString("\n\n")

	tag := fmt.Sprintf("%s · %s", q.Category, q.Difficulty)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(tag))
	b.WriteString("\n")
	b.WriteString(theme.Card.Width(cw).Render(
		lipgloss.NewStyle().Foreground(theme.Text).Render(q.Text)))
	b.WriteString("\n")

	if s.hintOpen && st.PendingHint != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Coach's tip"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(cw).Render(st.PendingHint))
		b.WriteString("\n")
	}

	if s.flash != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Width(cw).Render("⚠ " + s.flash))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.answer.View())

	if s.gradeErr != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render("⚠ " + s.gradeErr))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your answer is saved. Ctrl+R retries the grading."))
	}

	content := lipgloss.NewStyle().Padding(1, 4).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, content)
}

func (s *SessionScreen) renderDiscussing(width, height int) string {
	cw := contentWidth(width)
	st := s.state
	rec := st.Record(st.Index)
	if rec == nil || rec.Grade == nil {
		return renderWaiting(width, height, s.spinner)
	}
	grade := rec.Grade

	var b strings.Builder

	header := fmt.Sprintf("Q%d · %s", st.QuestionNumber(), rec.Question.Category)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(header))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - lipgloss.Width(header) - 2).Render(rec.Question.Text))
	b.WriteString("\n\n")

	b.WriteString(s.renderGradePanel(cw, grade))
	b.WriteString("\n")

	if s.modelOpen {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Model answer"))
		b.WriteString("\n")
		b.WriteString(theme.Card.Width(cw).Render(
			lipgloss.NewStyle().Foreground(theme.Text).Render(grade.ModelAnswer)))
		b.WriteString("\n")
	} else {
		b.WriteString(s.renderTranscript(cw, rec.Discussion))
	}

	if s.chatErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render("⚠ " + s.chatErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.chat.View())

	content := lipgloss.NewStyle().Padding(1, 4).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, content)
}

// renderGradePanel shows the score, the STAR breakdown, and the coach's
// bullet feedback for the current answer.
func (s *SessionScreen) renderGradePanel(cw int, grade *grader.Result) string {
	var b strings.Builder

	scoreStyle := lipgloss.NewStyle().Foreground(theme.ScoreColor(grade.Score)).Bold(true)
	b.WriteString(scoreStyle.Render(fmt.Sprintf("Score %d/100 · Grade %s", grade.Score, grade.Grade)))
	b.WriteString("\n\n")

	barWidth := cw
	if barWidth > 48 {
		barWidth = 48
	}
	starRows := []struct {
		label string
		score int
	}{
		{"Situation", grade.STAR.Situation},
		{"Task", grade.STAR.Task},
		{"Action", grade.STAR.Action},
		{"Result", grade.STAR.Result},
	}
	for _, row := range starRows {
		b.WriteString(components.NewScoreBar(row.label, row.score, 25, barWidth).View())
		b.WriteString("\n")
	}

	if len(grade.WhatWorked) > 0 {
		b.WriteString("\n")
		for _, w := range grade.WhatWorked {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("✓ "))
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 2).Render(w))
			b.WriteString("\n")
		}
	}
	for _, m := range grade.WhatMissed {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 2).Render(m))
		b.WriteString("\n")
	}

	if grade.Encouragement != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(cw).Render(grade.Encouragement))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTranscript shows the tail of the discussion with the coach.
func (s *SessionScreen) renderTranscript(cw int, turns []coach.Turn) string {
	if len(turns) == 0 {
		return ""
	}
	if len(turns) > transcriptWindow {
		turns = turns[len(turns)-transcriptWindow:]
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, t := range turns {
		speaker := "You"
		style := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		if t.Role == coach.RoleCoach {
			speaker = "Coach"
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(speaker + ": "))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - lipgloss.Width(speaker) - 2).Render(t.Content))
		b.WriteString("\n")
	}
	return b.String()
}
