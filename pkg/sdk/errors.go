package providerfinder

import "github.com/CalebSutherland/AI-Provider-Finder/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrParseFailure      = domain.ErrParseFailure
	ErrValidationFailure = domain.ErrValidationFailure
	ErrServiceFailure    = domain.ErrServiceFailure
	ErrProviderNotFound  = domain.ErrProviderNotFound
	ErrInternal          = domain.ErrInternal
)
