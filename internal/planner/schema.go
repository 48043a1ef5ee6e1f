package planner

import "github.com/Chirchirp/Interview-Coach/internal/llm"

// PlanSchema defines the JSON schema for session plan generation.
var PlanSchema = &llm.Schema{
	Name:        "session-plan",
	Description: "Candidate analysis and a ten-question interview plan",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"candidate_name": map[string]any{
				"type":        "string",
				"description": "First name from the resume, or 'Candidate'",
			},
			"target_role": map[string]any{
				"type":        "string",
				"description": "Role title taken from the job description",
			},
			"company_hints": map[string]any{
				"type":        "string",
				"description": "Company name if visible, else empty string",
			},
			"key_strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Three strengths relevant to the role",
			},
			"key_gaps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Three gaps between the resume and the role",
			},
			"opening_message": map[string]any{
				"type":        "string",
				"description": "2-3 warm sentences welcoming the candidate by name",
			},
			"question_pool": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type": "integer",
						},
						"category": map[string]any{
							"type": "string",
							"enum": []any{
								"Opener", "Behavioral", "Technical", "Situational",
								"Leadership", "Culture Fit", "Gap Challenge",
								"Motivation", "Closing",
							},
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question to ask, phrased naturally",
						},
						"what_great_looks_like": map[string]any{
							"type":        "string",
							"description": "One sentence describing a strong answer",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"Easy", "Medium", "Hard"},
						},
					},
					"required":             []any{"id", "category", "question", "what_great_looks_like", "difficulty"},
					"additionalProperties": false,
				},
			},
		},
		"required": []any{
			"candidate_name", "target_role", "company_hints", "key_strengths",
			"key_gaps", "opening_message", "question_pool",
		},
		"additionalProperties": false,
	},
}
