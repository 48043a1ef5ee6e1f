package grader

import "github.com/Chirchirp/Interview-Coach/internal/llm"

// GradeSchema defines the JSON schema for answer evaluation.
var GradeSchema = &llm.Schema{
	Name:        "answer-grade",
	Description: "STAR-rubric evaluation of one interview answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "Overall score out of 100",
			},
			"grade": map[string]any{
				"type": "string",
				"enum": []any{"A", "B", "C", "D", "F"},
			},
			"star_scores": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"situation": map[string]any{"type": "integer", "minimum": 0, "maximum": 25},
					"task":      map[string]any{"type": "integer", "minimum": 0, "maximum": 25},
					"action":    map[string]any{"type": "integer", "minimum": 0, "maximum": 25},
					"result":    map[string]any{"type": "integer", "minimum": 0, "maximum": 25},
				},
				"required":             []any{"situation", "task", "action", "result"},
				"additionalProperties": false,
			},
			"what_worked": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Two specific strengths of the answer",
			},
			"what_missed": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Two specific gaps in the answer",
			},
			"coach_reaction": map[string]any{
				"type":        "string",
				"description": "1-2 warm sentences referencing the candidate's actual words",
			},
			"model_answer": map[string]any{
				"type":        "string",
				"description": "A strong 2-3 sentence ideal answer",
			},
			"follow_up_question": map[string]any{
				"type":        "string",
				"description": "One natural follow-up question",
			},
			"encouragement": map[string]any{
				"type":        "string",
				"description": "One sentence tip",
			},
		},
		"required": []any{
			"score", "grade", "star_scores", "what_worked", "what_missed",
			"coach_reaction", "model_answer", "follow_up_question", "encouragement",
		},
		"additionalProperties": false,
	},
}
