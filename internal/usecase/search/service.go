// Package search orchestrates the provider search flow: free text to
// criteria, criteria to directory results.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
	"github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/query"
)

// Result is one page of directory matches plus the unpaginated total.
type Result struct {
	Providers []domain.Provider
	Total     int64
}

// Service handles provider search over parsed criteria.
type Service struct {
	parser    QueryParser
	directory Directory
	logger    *zap.Logger
}

// New creates a search service.
func New(parser QueryParser, directory Directory, logger *zap.Logger) *Service {
	return &Service{parser: parser, directory: directory, logger: logger}
}

// ParseQuery extracts and validates criteria from free text. The
// returned criteria are usable for a directory lookup; validation
// failures list every missing field at once.
func (s *Service) ParseQuery(ctx context.Context, userText string) (domain.SearchCriteria, error) {
	criteria, err := s.parser.Parse(ctx, userText)
	if err != nil {
		return domain.SearchCriteria{}, err
	}

	if err := query.Validate(criteria, false); err != nil {
		// Partial criteria travel with the error so the caller can show
		// what was understood.
		return criteria, err
	}

	return criteria, nil
}

// Search runs validated criteria against the directory. Criteria
// arriving from outside the parse flow are re-validated: the directory
// cannot answer without a specialty and a location.
func (s *Service) Search(ctx context.Context, criteria domain.SearchCriteria, page, pageSize int) (Result, error) {
	if err := query.Validate(criteria, false); err != nil {
		return Result{}, err
	}

	providers, total, err := s.directory.Search(ctx, criteria, page, pageSize)
	if err != nil {
		return Result{}, fmt.Errorf("directory search: %w", err)
	}

	s.logger.Info("directory search completed",
		zap.Stringp("specialty", criteria.Specialty),
		zap.Int("page", page),
		zap.Int("page_size", pageSize),
		zap.Int("returned", len(providers)),
		zap.Int64("total", total),
	)

	return Result{Providers: providers, Total: total}, nil
}
