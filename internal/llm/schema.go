package llm

// JSON schemas sent to providers that support schema-constrained generation.
// Every key is required and additionalProperties is disallowed so the model
// cannot smuggle extra fields past the contract.

func intakeSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status": map[string]any{
				"type": "string",
				"enum": []string{StatusSuccess, StatusNeedClarification},
			},
			"clarificationMessage": map[string]any{
				"type":        []string{"string", "null"},
				"description": "Question to ask if info is missing",
			},
			"options": map[string]any{
				"type":        []string{"array", "null"},
				"items":       map[string]any{"type": "string"},
				"description": "Suggested options for the user to pick from",
			},
			"title":        map[string]any{"type": []string{"string", "null"}, "description": "A concise title for the task"},
			"description":  map[string]any{"type": []string{"string", "null"}, "description": "Detailed task description"},
			"assigneeName": map[string]any{"type": []string{"string", "null"}, "description": "The name of the person assigned"},
			"dueDate":      map[string]any{"type": []string{"string", "null"}, "description": "The due date in YYYY-MM-DD format"},
			"priority":     map[string]any{"type": "string", "enum": []string{"High", "Medium", "Low"}},
		},
		"required": []string{
			"status", "clarificationMessage", "options",
			"title", "description", "assigneeName", "dueDate", "priority",
		},
		"additionalProperties": false,
	}
}

func reportSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status": map[string]any{
				"type": "string",
				"enum": []string{StatusSuccess, StatusNeedClarification},
			},
			"clarificationMessage": map[string]any{"type": []string{"string", "null"}},
			"options":              map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"title":                map[string]any{"type": "string"},
			"description":          map[string]any{"type": "string"},
			"statusUpdate":         map[string]any{"type": "string"},
			"progressUpdate":       map[string]any{"type": "number"},
			"priority":             map[string]any{"type": "string"},
			"assigneeName":         map[string]any{"type": []string{"string", "null"}},
			"dueDate":              map[string]any{"type": []string{"string", "null"}},
			"accomplishments":      map[string]any{"type": "string"},
			"remainingWork":        map[string]any{"type": "string"},
			"summarizedReport":     map[string]any{"type": "string"},
		},
		"required": []string{
			"status", "clarificationMessage", "options", "title", "description",
			"statusUpdate", "progressUpdate", "priority", "assigneeName",
			"dueDate", "accomplishments", "remainingWork", "summarizedReport",
		},
		"additionalProperties": false,
	}
}

func schemaFor(kind Kind) (name string, schema map[string]any) {
	if kind == KindReport {
		return "progress_report_schema", reportSchema()
	}
	return "task_parsing_schema", intakeSchema()
}
