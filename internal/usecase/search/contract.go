package search

import (
	"context"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
)

// QueryParser turns free text into structured search criteria.
type QueryParser interface {
	Parse(ctx context.Context, userText string) (domain.SearchCriteria, error)
}

// Directory is the provider directory lookup. Search applies exactly
// one location branch (zipcode, city+state, or state) plus the
// specialty and optional procedure-prefix filters, and reports the
// unpaginated total alongside the page of rows.
type Directory interface {
	Search(ctx context.Context, criteria domain.SearchCriteria, page, pageSize int) ([]domain.Provider, int64, error)
}
