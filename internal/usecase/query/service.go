// Package query turns free-text provider requests into validated,
// structured search criteria.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
	"github.com/CalebSutherland/AI-Provider-Finder/internal/metrics"
)

var (
	zipcodeRe = regexp.MustCompile(`^[0-9]{5}$`)
	stateRe   = regexp.MustCompile(`^[A-Z]{2}$`)
)

// Options tune extraction behavior.
type Options struct {
	// MaxRetries is the number of extra attempts after the first.
	MaxRetries int
	// FallbackSpecialty is suggested to the model for vague but clearly
	// medical requests.
	FallbackSpecialty string
	// Strictness decides the fate of unrecognized specialties.
	Strictness Strictness
}

// Service extracts structured search criteria from natural language.
type Service struct {
	extractor    Extractor
	specialties  *domain.SpecialtyCatalog
	procedures   *domain.ProcedureCatalog
	systemPrompt string
	opts         Options
	logger       *zap.Logger
}

// New creates a query extraction service. The system prompt is rendered
// once: catalogs are immutable for the process lifetime.
func New(
	extractor Extractor,
	specialties *domain.SpecialtyCatalog,
	procedures *domain.ProcedureCatalog,
	opts Options,
	logger *zap.Logger,
) *Service {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 2
	}
	if opts.FallbackSpecialty == "" {
		opts.FallbackSpecialty = "Family practice"
	}
	if opts.Strictness == "" {
		opts.Strictness = StrictnessDowngrade
	}
	return &Service{
		extractor:    extractor,
		specialties:  specialties,
		procedures:   procedures,
		systemPrompt: buildSystemPrompt(specialties, procedures, opts.FallbackSpecialty),
		opts:         opts,
		logger:       logger,
	}
}

// rawCriteria is the wire shape the extraction capability produces.
type rawCriteria struct {
	Specialty   *string `json:"specialty"`
	Zipcode     *string `json:"zipcode"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	HCPCSPrefix *string `json:"hcpcs_prefix"`
	Confidence  *string `json:"confidence"`
}

// Parse extracts search criteria from userText. Inputs of fewer than
// two tokens short-circuit to an all-null structure without touching
// the capability. Incomplete, empty, and malformed responses are
// retried up to the budget; exhaustion surfaces ErrParseFailure, while
// a persistently unreachable capability surfaces ErrServiceFailure.
func (s *Service) Parse(ctx context.Context, userText string) (domain.SearchCriteria, error) {
	userText = strings.TrimSpace(userText)
	if len(strings.Fields(userText)) < 2 {
		s.logger.Info("query too short for extraction",
			zap.Int("length", len(userText)))
		return domain.SearchCriteria{Confidence: domain.ConfidenceLow}, nil
	}

	raw, err := domain.Attempt(s.opts.MaxRetries, func(attempt int) (rawCriteria, error) {
		if attempt > 0 {
			s.logger.Info("retrying query extraction", zap.Int("attempt", attempt+1))
		}
		return s.extractOnce(ctx, userText)
	})
	if err != nil {
		return domain.SearchCriteria{}, err
	}

	criteria := s.sanitize(raw)

	s.logger.Info("parsed search criteria",
		zap.Stringp("specialty", criteria.Specialty),
		zap.Stringp("zipcode", criteria.Zipcode),
		zap.Stringp("city", criteria.City),
		zap.Stringp("state", criteria.State),
		zap.Stringp("hcpcs_prefix", criteria.HCPCSPrefix),
		zap.String("confidence", string(criteria.Confidence)),
	)

	return criteria, nil
}

// extractOnce performs one extraction attempt and classifies every
// failure as retry-eligible or terminal.
func (s *Service) extractOnce(ctx context.Context, userText string) (rawCriteria, error) {
	var zero rawCriteria

	result, err := s.extractor.Extract(ctx, s.systemPrompt, userText, criteriaSchema)
	if err != nil {
		metrics.ExtractionRetriesTotal.WithLabelValues(criteriaSchemaName, "service_error").Inc()
		return zero, domain.Retryable(err)
	}

	if result.Status == domain.StatusIncomplete {
		metrics.ExtractionRetriesTotal.WithLabelValues(criteriaSchemaName, "incomplete").Inc()
		return zero, domain.Retryable(fmt.Errorf(
			"response incomplete (%s): %w", result.IncompleteReason, domain.ErrParseFailure))
	}

	if result.Value == nil {
		metrics.ExtractionRetriesTotal.WithLabelValues(criteriaSchemaName, "empty").Inc()
		return zero, domain.Retryable(fmt.Errorf(
			"empty structured output: %w", domain.ErrParseFailure))
	}

	var raw rawCriteria
	if err := json.Unmarshal(result.Value, &raw); err != nil {
		metrics.ExtractionRetriesTotal.WithLabelValues(criteriaSchemaName, "malformed").Inc()
		return zero, domain.Retryable(fmt.Errorf(
			"malformed structured output: %w", domain.ErrParseFailure))
	}

	if sp := clean(raw.Specialty); sp != nil && !s.specialties.Contains(*sp) {
		s.logger.Warn("unrecognized specialty from extraction", zap.String("specialty", *sp))
		if s.opts.Strictness == StrictnessStrict {
			metrics.ExtractionRetriesTotal.WithLabelValues(criteriaSchemaName, "bad_specialty").Inc()
			return zero, domain.Retryable(fmt.Errorf(
				"specialty %q not recognized: %w", *sp, domain.ErrParseFailure))
		}
	}

	return raw, nil
}

// sanitize applies field-level constraints the capability cannot be
// trusted to honor. A field that fails its constraint is dropped, not
// fatal: validation of required fields happens downstream.
func (s *Service) sanitize(raw rawCriteria) domain.SearchCriteria {
	c := domain.SearchCriteria{
		Specialty: clean(raw.Specialty),
		Zipcode:   clean(raw.Zipcode),
		City:      clean(raw.City),
		State:     clean(raw.State),
	}

	if c.Zipcode != nil && !zipcodeRe.MatchString(*c.Zipcode) {
		s.logger.Warn("dropping malformed zipcode", zap.String("zipcode", *c.Zipcode))
		c.Zipcode = nil
	}

	if c.State != nil {
		upper := strings.ToUpper(*c.State)
		if stateRe.MatchString(upper) {
			c.State = &upper
		} else {
			s.logger.Warn("dropping malformed state", zap.String("state", *c.State))
			c.State = nil
		}
	}

	if c.Specialty != nil && !s.specialties.Contains(*c.Specialty) {
		c.Confidence = domain.ConfidenceLow
	}

	if prefix := clean(raw.HCPCSPrefix); prefix != nil {
		if desc, ok := s.procedures.Description(*prefix); ok {
			c.HCPCSPrefix = prefix
			c.HCPCSDescription = &desc
		} else {
			s.logger.Warn("dropping unknown procedure prefix", zap.String("prefix", *prefix))
		}
	}

	if conf := clean(raw.Confidence); conf != nil && c.Confidence == "" {
		if parsed := domain.Confidence(strings.ToLower(*conf)); domain.ValidConfidence(parsed) {
			c.Confidence = parsed
		}
	}
	if c.Confidence == "" {
		c.Confidence = domain.ConfidenceLow
	}

	return c
}

// clean trims a nullable string and collapses empties to nil.
func clean(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
