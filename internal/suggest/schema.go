package suggest

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// suggestionSchema constrains the enhancement payload before it is trusted
// over the heuristic result. All fields are optional; unknown experience
// levels or job types are rejected here rather than silently merged.
const suggestionSchema = `{
  "type": "object",
  "properties": {
    "additionalSkills": {
      "type": "array",
      "items": {"type": "string"}
    },
    "experienceLevel": {
      "type": "string"
    },
    "jobType": {
      "type": "string"
    },
    "budgetRange": {
      "type": "object",
      "properties": {
        "min": {"type": "integer", "minimum": 0},
        "max": {"type": "integer", "minimum": 0},
        "currency": {"type": "string"}
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(suggestionSchema)

// validateSuggestionJSON checks the raw enhancement output against the
// suggestion schema.
func validateSuggestionJSON(raw string) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("suggestion payload is not valid JSON: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("suggestion payload failed schema validation: %v", result.Errors())
	}
	return nil
}
