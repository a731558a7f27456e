package providerfinder

import (
	"context"
	"fmt"
	"time"
)

// RankService orders providers by demographic match.
type RankService struct {
	svc rankUseCase
	obs *observer
}

// Providers extracts the requester's demographics from userText and
// ranks the given provider ids by compatibility. Demographics are
// returned even on failure; ids missing from the directory are skipped.
func (s *RankService) Providers(
	ctx context.Context, userText string, providerIDs []int64,
) (_ RankResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("rank.providers", start, err) }()

	result, err := s.svc.Rank(ctx, userText, providerIDs)
	if err != nil {
		return RankResult{
			Demographics: fromInternalDemographics(result.Demographics),
		}, fmt.Errorf("rank providers: %w", err)
	}

	ranked := make([]ScoredProvider, 0, len(result.Providers))
	for _, p := range result.Providers {
		ranked = append(ranked, ScoredProvider{
			Provider: fromInternalProvider(p.Provider),
			Score:    p.Score,
			Rank:     p.Rank,
		})
	}
	return RankResult{
		Demographics: fromInternalDemographics(result.Demographics),
		Providers:    ranked,
	}, nil
}
