package grader

import (
	"fmt"
	"strings"

	"github.com/Chirchirp/Interview-Coach/internal/extract"
)

const gradeSystemPrompt = `Return ONLY valid JSON. No markdown.`

func buildGradeUserMessage(input Input) string {
	var b strings.Builder

	b.WriteString("Grade this interview answer against the STAR rubric: situation, task, action, result, 0-25 points each.\n")
	b.WriteString("Reference the candidate's actual words in coach_reaction. Be encouraging but honest.\n")
	fmt.Fprintf(&b, "\nCATEGORY: %s\n", input.Question.Category)
	fmt.Fprintf(&b, "QUESTION: %s\n", input.Question.Text)
	fmt.Fprintf(&b, "CANDIDATE ANSWER: %s\n", extract.Truncate(input.Answer, AnswerContextLimit))
	b.WriteString("RESUME:\n")
	b.WriteString(extract.Truncate(input.Resume, ResumeContextLimit))
	b.WriteString("\nJOB:\n")
	b.WriteString(extract.Truncate(input.Job, JobContextLimit))
	b.WriteString("\nJSON only:")

	return b.String()
}
