package providerfinder

import (
	"context"
	"fmt"
	"time"
)

// SearchService parses free-text queries and runs directory searches.
type SearchService struct {
	svc searchUseCase
	obs *observer
}

// Parse extracts structured search criteria from free text and
// validates them. On validation failure the returned criteria still
// carry whatever was extracted.
func (s *SearchService) Parse(ctx context.Context, userText string) (_ Criteria, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.parse", start, err) }()

	criteria, err := s.svc.ParseQuery(ctx, userText)
	if err != nil {
		return fromInternalCriteria(criteria), fmt.Errorf("parse query: %w", err)
	}
	return fromInternalCriteria(criteria), nil
}

// Providers queries the directory with the given criteria. Pages are
// 1-based; the returned total counts every match, not just the page.
func (s *SearchService) Providers(
	ctx context.Context, criteria Criteria, page, pageSize int,
) (_ ProviderPage, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.providers", start, err) }()

	result, err := s.svc.Search(ctx, toInternalCriteria(criteria), page, pageSize)
	if err != nil {
		return ProviderPage{}, fmt.Errorf("search providers: %w", err)
	}

	providers := make([]Provider, 0, len(result.Providers))
	for _, p := range result.Providers {
		providers = append(providers, fromInternalProvider(p))
	}
	return ProviderPage{Providers: providers, Total: result.Total}, nil
}
