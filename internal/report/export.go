package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const exportRule = 50

// ExportText renders the report as a flat text document: header, summary,
// one block per graded question, action plan, closing note.
func ExportText(r *Report) string {
	lines := []string{
		"INTERVIEW COACHING REPORT — Coach Alex AI",
		strings.Repeat("=", exportRule),
		fmt.Sprintf("Overall Score: %d/100 · Grade %s · %s",
			r.Summary.OverallScore, r.Summary.OverallGrade, r.Summary.Tier),
		fmt.Sprintf("\"%s\"", r.Narrative.Headline),
		r.Summary.CompletionLine(),
		"",
	}

	if len(r.Summary.CategoryScores) > 0 {
		lines = append(lines, "CATEGORY SCORES:")
		for _, cs := range r.Summary.CategoryScores {
			lines = append(lines, fmt.Sprintf("%s: %d/100", cs.Category, cs.Score))
		}
		lines = append(lines, "")
	}

	if len(r.Summary.TopStrengths) > 0 {
		lines = append(lines, "TOP STRENGTHS:")
		for i, s := range r.Summary.TopStrengths {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, s))
		}
		lines = append(lines, "")
	}

	if len(r.Summary.Improvements) > 0 {
		lines = append(lines, "PRIORITY IMPROVEMENTS:")
		for i, imp := range r.Summary.Improvements {
			lines = append(lines, fmt.Sprintf("%d. %s (seen on %d questions)", i+1, imp.Theme, imp.Count))
			if i < len(r.Narrative.Fixes) {
				lines = append(lines, fmt.Sprintf("   Fix: %s", r.Narrative.Fixes[i]))
			}
		}
	}

	for _, a := range r.Answers {
		if a.Grade == nil {
			continue
		}
		lines = append(lines,
			fmt.Sprintf("\nQ%d: %s", a.Index, a.Question.Text),
			fmt.Sprintf("Score: %d/100 (%s)", a.Grade.Score, a.Grade.Grade),
			fmt.Sprintf("Your Answer: %s", a.AnswerText),
			fmt.Sprintf("Coach: %s", a.Grade.CoachReaction),
			fmt.Sprintf("Model Answer: %s", a.Grade.ModelAnswer),
			strings.Repeat("─", exportRule),
		)
	}

	if len(r.Narrative.ActionPlan) > 0 {
		lines = append(lines, "\nACTION PLAN:")
		for i, step := range r.Narrative.ActionPlan {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, step))
		}
	}

	if r.Narrative.PersonalNote != "" {
		lines = append(lines, "\nCOACH'S NOTE:", r.Narrative.PersonalNote)
	}

	return strings.Join(lines, "\n") + "\n"
}

// SaveText writes the exported report to path, creating parent directories.
func SaveText(r *Report, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(ExportText(r)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
