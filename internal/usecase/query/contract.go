package query

import (
	"context"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
)

// Extractor is the structured extraction capability used to turn free
// text into search criteria.
type Extractor interface {
	Extract(ctx context.Context, systemPrompt, userText string, schema domain.Schema) (domain.Extraction, error)
}

// Strictness controls what happens when extraction returns a specialty
// that is not a case-exact catalog member.
type Strictness string

const (
	// StrictnessDowngrade keeps the unrecognized specialty but forces
	// confidence to low.
	StrictnessDowngrade Strictness = "downgrade"
	// StrictnessStrict retries, then fails the parse.
	StrictnessStrict Strictness = "strict"
)
