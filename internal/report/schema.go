package report

import "github.com/Chirchirp/Interview-Coach/internal/llm"

// NarrativeSchema defines the JSON schema for report narration.
var NarrativeSchema = &llm.Schema{
	Name:        "report-narrative",
	Description: "Prose layer of the final coaching report",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "One punchy sentence summarizing the session",
			},
			"fixes": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "One concrete fix per priority improvement, same order",
			},
			"action_plan": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly four next steps, most urgent first",
			},
			"personal_note": map[string]any{
				"type":        "string",
				"description": "2-3 warm closing sentences addressed to the candidate",
			},
		},
		"required":             []any{"headline", "fixes", "action_plan", "personal_note"},
		"additionalProperties": false,
	},
}
