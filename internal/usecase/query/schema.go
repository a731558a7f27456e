package query

import (
	"encoding/json"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
)

// criteriaSchemaName identifies the extraction target in metrics and logs.
const criteriaSchemaName = "provider_search_criteria"

// criteriaSchema is the strict JSON schema for search criteria. Every
// property is required and nullable, which the strict structured-output
// mode demands.
var criteriaSchema = domain.Schema{
	Name: criteriaSchemaName,
	Definition: json.RawMessage(`{
  "type": "object",
  "properties": {
    "specialty": {
      "type": ["string", "null"],
      "description": "Medicare specialty exactly as listed"
    },
    "zipcode": {
      "type": ["string", "null"],
      "description": "5-digit ZIP code if provided"
    },
    "city": {
      "type": ["string", "null"],
      "description": "City name in proper case"
    },
    "state": {
      "type": ["string", "null"],
      "description": "Two-letter uppercase state code"
    },
    "hcpcs_prefix": {
      "type": ["string", "null"],
      "description": "HCPCS code prefix key, 1 or 2 digits"
    },
    "confidence": {
      "type": ["string", "null"],
      "enum": ["high", "medium", "low", null],
      "description": "Confidence in the specialty match"
    }
  },
  "required": ["specialty", "zipcode", "city", "state", "hcpcs_prefix", "confidence"],
  "additionalProperties": false
}`),
}
