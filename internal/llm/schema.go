package llm

// BuildIdentityJSONSchema returns the extraction contract as a JSON-Schema
// (draft 2020-12 subset) generic map. Every key must be present; every value
// may be null when the model is uncertain.
func BuildIdentityJSONSchema() map[string]any {
	props := map[string]any{
		"name":            nullableString(),
		"dob":             nullableString(),
		"phone":           nullableString(),
		"document_number": nullableString(),
		"address":         nullableString(),
		"type":            nullableString(),
		"language":        nullableString(),
		"gender":          nullableString(),
	}

	required := []string{
		"name", "dob", "phone", "document_number",
		"address", "type", "language", "gender",
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func nullableString() map[string]any {
	return map[string]any{"type": []any{"string", "null"}}
}
