package planner

import (
	"fmt"
	"strings"

	"github.com/Chirchirp/Interview-Coach/internal/extract"
)

const planSystemPrompt = `Return ONLY valid JSON. No markdown.`

// Per-slot guidance and target difficulty. Slot order mirrors
// MaterialsSequence / FieldSequence.
var materialsSlotGuidance = []string{
	"a warm opener",
	"a STAR question drawn from their experience",
	"a challenge or failure question",
	"a role-specific technical question",
	"a deeper technical or tool question",
	"a hypothetical workplace scenario",
	"an influence or team question",
	"a values or motivation question",
	"a question probing their weakest gap",
	"the closing: 'Do you have any questions for me?'",
}

var materialsDifficulties = []Difficulty{
	DifficultyEasy, DifficultyMedium, DifficultyMedium, DifficultyMedium,
	DifficultyHard, DifficultyMedium, DifficultyMedium, DifficultyEasy,
	DifficultyHard, DifficultyEasy,
}

var fieldSlotGuidance = []string{
	"a warm opener about their path into the field",
	"a STAR behavioral question for the field and level",
	"a challenge question for the field",
	"a core technical question for the field",
	"an advanced technical question for the field",
	"a workplace scenario for the field",
	"a collaboration question fitting their level",
	"a work-environment or values question",
	"a career-goals question for the field",
	"the closing: 'Do you have any questions for me?'",
}

var fieldDifficulties = []Difficulty{
	DifficultyEasy, DifficultyMedium, DifficultyMedium, DifficultyMedium,
	DifficultyHard, DifficultyMedium, DifficultyMedium, DifficultyEasy,
	DifficultyEasy, DifficultyEasy,
}

func buildMaterialsUserMessage(resume, job string) string {
	var b strings.Builder

	b.WriteString("You are an expert interview coach. Analyse this resume and job description, then build a 10-question interview practice plan.\n\n")
	writeSlotList(&b, MaterialsSequence(), materialsSlotGuidance, materialsDifficulties)
	b.WriteString("\nExtract the candidate's first name (or use \"Candidate\"), the target role, any visible company name, three key strengths, and three key gaps. Write a warm 2-3 sentence opening message welcoming the candidate by name.\n")
	b.WriteString("\nRESUME:\n")
	b.WriteString(extract.Truncate(resume, ResumeContextLimit))
	b.WriteString("\n\nJOB DESCRIPTION:\n")
	b.WriteString(extract.Truncate(job, JobContextLimit))

	return b.String()
}

func buildFieldUserMessage(field, experience string, focus []string) string {
	focusStr := "Behavioral, Technical, Situational"
	if len(focus) > 0 {
		focusStr = strings.Join(focus, ", ")
	}

	var b strings.Builder

	b.WriteString("You are an expert interview coach. Build a 10-question interview practice plan for a candidate with no uploaded materials.\n\n")
	writeSlotList(&b, FieldSequence(), fieldSlotGuidance, fieldDifficulties)
	b.WriteString("\nUse \"Candidate\" as the candidate name and the field as the target role. Write a warm 2-3 sentence opening message for a ")
	b.WriteString(experience)
	b.WriteString(" ")
	b.WriteString(field)
	b.WriteString(" candidate.\n")
	fmt.Fprintf(&b, "\nFIELD: %s\nEXPERIENCE: %s\nFOCUS: %s", field, experience, focusStr)

	return b.String()
}

func writeSlotList(b *strings.Builder, seq []Category, guidance []string, difficulties []Difficulty) {
	b.WriteString("The question_pool must contain exactly 10 questions in this order:\n")
	for i, cat := range seq {
		fmt.Fprintf(b, "%d. %s (%s): %s\n", i+1, cat, difficulties[i], guidance[i])
	}
}
