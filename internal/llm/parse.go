package llm

import (
	"encoding/json"
	"log/slog"

	"github.com/idocr/idocr/internal/common"
)

// Parser extracts the first complete top-level JSON object embedded in a
// free-form model reply and unmarshals it into IdentityFields.
type Parser struct {
	schema map[string]any
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{schema: BuildIdentityJSONSchema(), logger: logger}
}

// Parse locates the JSON object in reply and decodes it. The schema check is
// advisory only: a mismatch is logged, never surfaced, because the model's
// output is returned to the caller as-is.
func (p *Parser) Parse(reply string) (IdentityFields, error) {
	obj, err := ExtractJSONObject(reply)
	if err != nil {
		return IdentityFields{}, err
	}

	var fields IdentityFields
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return IdentityFields{}, common.NewParseError("invalid json object in reply", err)
	}

	if err := ValidateJSONAgainstSchema(p.schema, []byte(obj)); err != nil {
		p.logger.Warn("llm.parse.schema_mismatch", "error", err)
	}
	return fields, nil
}

// ExtractJSONObject returns the first complete top-level JSON object in s.
// The scan tracks brace nesting depth and string-literal context, so nested
// objects and braces inside string values are handled correctly. Prose
// before the first '{' is ignored, including any stray '}' characters.
func ExtractJSONObject(s string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if start == -1 {
			if ch == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	if start == -1 {
		return "", common.NewParseError("no json object found in reply", nil)
	}
	return "", common.NewParseError("unterminated json object in reply", nil)
}
