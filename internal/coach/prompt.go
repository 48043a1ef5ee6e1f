package coach

import (
	"fmt"
	"strings"

	"github.com/Chirchirp/Interview-Coach/internal/extract"
	"github.com/Chirchirp/Interview-Coach/internal/planner"
)

const hintSystemPrompt = `You are an expert interview coach. Be specific and concise.`

func buildHintUserMessage(question planner.Question, resume, job string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\nCategory: %s\n\n", question.Text, question.Category)
	b.WriteString("Give a 3-4 sentence coaching tip for answering this question. Be specific, not generic.\n")
	b.WriteString("RESUME:\n")
	b.WriteString(extract.Truncate(resume, hintResumeLimit))
	b.WriteString("\nJOB:\n")
	b.WriteString(extract.Truncate(job, hintJobLimit))

	return b.String()
}

func buildChatSystemPrompt(resume, job string) string {
	var b strings.Builder

	b.WriteString("You are Alex, an experienced warm interview coach. ")
	b.WriteString("Give direct, specific coaching in 2-3 short paragraphs. ")
	b.WriteString("Reference the candidate's actual words. Be encouraging but honest.")
	if strings.TrimSpace(resume) != "" {
		b.WriteString("\n\nRESUME:\n")
		b.WriteString(extract.Truncate(resume, chatResumeLimit))
	}
	if strings.TrimSpace(job) != "" {
		b.WriteString("\n\nJOB:\n")
		b.WriteString(extract.Truncate(job, chatJobLimit))
	}

	return b.String()
}
