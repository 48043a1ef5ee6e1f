package report

import (
	"fmt"
	"strings"

	"github.com/Chirchirp/Interview-Coach/internal/extract"
)

const narrateSystemPrompt = `Return ONLY valid JSON. No markdown.`

// NarrateInput carries everything narration needs: the deterministic
// summary, the per-question record behind it, and session context.
type NarrateInput struct {
	Summary Summary
	Answers []Answer
	Resume  string
	Job     string

	CandidateName string
	TargetRole    string
}

func buildNarrateUserMessage(input NarrateInput) string {
	var b strings.Builder

	b.WriteString("Write the prose for a final interview coaching report. The scores are already computed; do not change them.\n")
	fmt.Fprintf(&b, "\nCANDIDATE: %s\nROLE: %s\n", input.CandidateName, input.TargetRole)
	fmt.Fprintf(&b, "OVERALL: %d/100 · Grade %s · %s\n", input.Summary.OverallScore, input.Summary.OverallGrade, input.Summary.Tier)
	fmt.Fprintf(&b, "COMPLETION: %s\n", input.Summary.CompletionLine())

	b.WriteString("\nSESSION:\n")
	for _, a := range input.Answers {
		if a.Grade == nil {
			continue
		}
		fmt.Fprintf(&b, "Q%d [%s]: %s\n", a.Index, a.Question.Category, clip(a.Question.Text, questionDigestLength))
		fmt.Fprintf(&b, "Score: %d/100 | Missed: %s\n\n", a.Grade.Score, strings.Join(a.Grade.WhatMissed, "; "))
	}

	if len(input.Summary.Improvements) > 0 {
		b.WriteString("PRIORITY IMPROVEMENTS (write one fix per entry, same order):\n")
		for i, imp := range input.Summary.Improvements {
			fmt.Fprintf(&b, "%d. %s (missed on %d questions)\n", i+1, imp.Theme, imp.Count)
		}
	}

	b.WriteString("\nWrite: a one-sentence headline, the fixes, an action plan of exactly 4 steps, and a warm 2-3 sentence personal note to the candidate by name.\n")
	b.WriteString("\nRESUME:\n")
	b.WriteString(extract.Truncate(input.Resume, ResumeContextLimit))
	b.WriteString("\nJOB:\n")
	b.WriteString(extract.Truncate(input.Job, JobContextLimit))
	b.WriteString("\nJSON only:")

	return b.String()
}

// clip shortens a string for one-line digests. No marker: digests are
// context, not quoted material.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
