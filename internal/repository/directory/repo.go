// Package directory implements the provider directory lookup over the
// search index.
package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/db"
	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
)

// store is the consumer interface for directory lookups (ISP).
type store interface {
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Repo implements usecase/search.Directory.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a directory repository. keyPrefix namespaces every key
// and index, e.g. "pf:".
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// IndexName returns the FT index the repository queries.
func (r *Repo) IndexName() string {
	return r.keyPrefix + "providers:idx"
}

// providerKey returns the hash key for one provider.
func (r *Repo) providerKey(id int64) string {
	return Key(r.keyPrefix, id)
}

// Search filters the directory by specialty, one location branch, and
// an optional procedure prefix, ordered by provider id ascending.
// The returned total counts every match of the same predicate.
func (r *Repo) Search(
	ctx context.Context, criteria domain.SearchCriteria, page, pageSize int,
) ([]domain.Provider, int64, error) {
	if page < 1 {
		page = 1
	}

	queryStr := buildQuery(criteria)

	result, err := r.store.SearchList(ctx, &db.ListQuery{
		Index:  r.IndexName(),
		Query:  queryStr,
		SortBy: "id",
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("search providers: %w: %w", domain.ErrServiceFailure, err)
	}

	providers := make([]domain.Provider, 0, len(result.Entries))
	for _, entry := range result.Entries {
		providers = append(providers, parseProvider(entry.Fields))
	}

	return providers, int64(result.Total), nil
}

// Get returns a single provider by id.
func (r *Repo) Get(ctx context.Context, id int64) (domain.Provider, error) {
	fields, err := r.store.HGetAll(ctx, r.providerKey(id))
	if err != nil {
		return domain.Provider{}, fmt.Errorf("get provider %d: %w: %w", id, domain.ErrServiceFailure, err)
	}
	if len(fields) == 0 {
		return domain.Provider{}, domain.ErrProviderNotFound
	}
	return parseProvider(fields), nil
}

// buildQuery renders criteria as an FT.SEARCH predicate. Exactly one
// location branch applies, most specific first: zipcode, then
// city+state, then state alone.
func buildQuery(criteria domain.SearchCriteria) string {
	var parts []string

	if criteria.Specialty != nil {
		parts = append(parts, tagFilter("specialty", *criteria.Specialty))
	}

	switch {
	case criteria.Zipcode != nil:
		parts = append(parts, tagFilter("zipcode", *criteria.Zipcode))
	case criteria.City != nil && criteria.State != nil:
		parts = append(parts,
			tagFilter("state", *criteria.State),
			tagFilter("city", *criteria.City))
	case criteria.State != nil:
		parts = append(parts, tagFilter("state", *criteria.State))
	}

	if criteria.HCPCSPrefix != nil {
		parts = append(parts, fmt.Sprintf("@hcpcs:{%s*}", db.EscapeTag(*criteria.HCPCSPrefix)))
	}

	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func tagFilter(field, value string) string {
	return fmt.Sprintf("@%s:{%s}", field, db.EscapeTag(value))
}
