package providerfinder

import (
	"context"
	"encoding/json"
)

// ExtractionStatus reports whether the provider produced a complete
// structured response.
type ExtractionStatus string

// Extraction status constants.
const (
	StatusComplete   ExtractionStatus = "complete"
	StatusIncomplete ExtractionStatus = "incomplete"
)

// Schema describes the structured response the extractor must produce.
type Schema struct {
	Name       string
	Definition json.RawMessage
}

// Extraction is the outcome of one extractor call. A nil Value with
// StatusComplete means the provider returned nothing parseable.
type Extraction struct {
	Status           ExtractionStatus
	Value            json.RawMessage
	IncompleteReason string
}

// Extractor turns free text into a structured value matching a schema.
// Implement it to plug a custom language-model provider into the
// client; most callers use WithOpenAI instead.
type Extractor interface {
	Extract(ctx context.Context, systemPrompt, userText string, schema Schema) (Extraction, error)
}
