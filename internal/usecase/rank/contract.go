package rank

import (
	"context"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
)

// Extractor produces user demographics from free text.
type Extractor interface {
	Parse(ctx context.Context, userText string) (domain.UserDemographics, error)
}

// DemographicsLookup fetches per-provider aggregate beneficiary counts.
// Unknown identifiers are skipped, not errors.
type DemographicsLookup interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.DemographicProfile, error)
}
