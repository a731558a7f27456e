// Package demographics reads per-provider aggregate beneficiary counts.
package demographics

import (
	"context"
	"fmt"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
)

// store is the consumer interface for demographic lookups (ISP).
type store interface {
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// Repo implements usecase/rank.DemographicsLookup.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a demographics repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// GetByIDs fetches demographic profiles for the given providers in one
// pipelined round trip. Identifiers with no stored record are skipped;
// the result preserves the input order of the ids that were found.
func (r *Repo) GetByIDs(ctx context.Context, ids []int64) ([]domain.DemographicProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf("%sproviders:%d", r.keyPrefix, id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get provider demographics: %w: %w", domain.ErrServiceFailure, err)
	}

	profiles := make([]domain.DemographicProfile, 0, len(hashes))
	for _, fields := range hashes {
		if len(fields) == 0 {
			continue
		}
		profiles = append(profiles, parseProfile(fields))
	}

	return profiles, nil
}
