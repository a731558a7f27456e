// Package rank scores providers against a requester's demographic
// profile and orders them best match first.
package rank

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
)

// ErrNoDemographics signals that extraction found no age, sex, or race
// in the request text, leaving nothing to rank by.
var ErrNoDemographics = fmt.Errorf(
	"could not determine age, sex, or race from input. Please provide more details: %w",
	domain.ErrValidationFailure)

// Result carries the extracted demographics alongside the ranked
// providers. Demographics are returned even on failure so the caller
// can show what was understood.
type Result struct {
	Demographics domain.UserDemographics
	Providers    []domain.ScoredProvider
}

// Service ranks providers by demographic match.
type Service struct {
	extractor Extractor
	lookup    DemographicsLookup
	normalize bool
	logger    *zap.Logger
}

// New creates a ranking service. When normalize is true the top
// provider's score is rescaled to exactly 100 and the rest scale
// proportionally; ordering is identical either way.
func New(extractor Extractor, lookup DemographicsLookup, normalize bool, logger *zap.Logger) *Service {
	return &Service{extractor: extractor, lookup: lookup, normalize: normalize, logger: logger}
}

// Rank extracts demographics from userText and orders the given
// providers by compatibility. All-null demographics fail with
// ErrNoDemographics; identifiers missing from the directory are
// silently skipped.
func (s *Service) Rank(ctx context.Context, userText string, providerIDs []int64) (Result, error) {
	demo, err := s.extractor.Parse(ctx, userText)
	if err != nil {
		return Result{}, err
	}

	if demo.Empty() {
		return Result{Demographics: demo}, ErrNoDemographics
	}

	profiles, err := s.lookup.GetByIDs(ctx, providerIDs)
	if err != nil {
		return Result{Demographics: demo}, fmt.Errorf("fetch provider demographics: %w", err)
	}

	ranked := s.rankProfiles(profiles, demo)

	s.logger.Info("ranked providers",
		zap.Int("requested", len(providerIDs)),
		zap.Int("ranked", len(ranked)),
	)

	return Result{Demographics: demo, Providers: ranked}, nil
}

// rankProfiles scores, sorts, optionally normalizes, and assigns dense
// 1-based ranks. A panic while scoring one provider excludes that
// provider instead of aborting the batch.
func (s *Service) rankProfiles(
	profiles []domain.DemographicProfile, demo domain.UserDemographics,
) []domain.ScoredProvider {
	scored := make([]domain.ScoredProvider, 0, len(profiles))
	for _, p := range profiles {
		score, err := s.scoreSafe(p, demo)
		if err != nil {
			s.logger.Error("excluding provider from ranking",
				zap.Int64("provider_id", p.ID), zap.Error(err))
			continue
		}
		scored = append(scored, domain.ScoredProvider{Provider: p.Provider, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if s.normalize && len(scored) > 0 && scored[0].Score > 0 {
		top := scored[0].Score
		for i := range scored {
			scored[i].Score = scored[i].Score / top * 100
		}
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Score > scored[j].Score
		})
	}

	for i := range scored {
		scored[i].Rank = i + 1
	}

	return scored
}

// scoreSafe wraps Score with panic recovery. Scoring is pure over
// validated input, so a panic here is an internal fault scoped to one
// provider.
func (s *Service) scoreSafe(
	p domain.DemographicProfile, demo domain.UserDemographics,
) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: score panic: %v", domain.ErrInternal, r)
		}
	}()
	return Score(p, demo), nil
}
