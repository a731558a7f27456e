// Package demographics extracts a requester's age, sex, and race from
// free text.
package demographics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
	"github.com/CalebSutherland/AI-Provider-Finder/internal/metrics"
)

const schemaName = "user_demographics"

// Extractor is the structured extraction capability.
type Extractor interface {
	Extract(ctx context.Context, systemPrompt, userText string, schema domain.Schema) (domain.Extraction, error)
}

const systemPrompt = "You are an assistant that extracts demographic information from user text. " +
	"Return ONLY a JSON object with fields 'age', 'sex', and 'race'. " +
	"If a field is not mentioned, return null. " +
	"Allowed values: sex = male, female; " +
	"race = white, black, asian, hispanic, native, other."

var schema = domain.Schema{
	Name: schemaName,
	Definition: json.RawMessage(`{
  "type": "object",
  "properties": {
    "age": {"type": ["integer", "null"], "description": "Age in years"},
    "sex": {"type": ["string", "null"], "enum": ["male", "female", null]},
    "race": {"type": ["string", "null"], "enum": ["white", "black", "asian", "hispanic", "native", "other", null]}
  },
  "required": ["age", "sex", "race"],
  "additionalProperties": false
}`),
}

// Service extracts user demographics from natural language.
type Service struct {
	extractor  Extractor
	maxRetries int
	logger     *zap.Logger
}

// New creates a demographics extraction service.
func New(extractor Extractor, maxRetries int, logger *zap.Logger) *Service {
	if maxRetries <= 0 {
		maxRetries = 2
	}
	return &Service{extractor: extractor, maxRetries: maxRetries, logger: logger}
}

type rawDemographics struct {
	Age  *int    `json:"age"`
	Sex  *string `json:"sex"`
	Race *string `json:"race"`
}

// Parse extracts demographics from userText. Detecting nothing is a
// valid outcome: all-null demographics come back with a nil error. Out
// of enum sex or race values trigger a retry; once the budget is gone
// the offending field is discarded rather than failing the request.
func (s *Service) Parse(ctx context.Context, userText string) (domain.UserDemographics, error) {
	raw, err := domain.Attempt(s.maxRetries, func(attempt int) (rawDemographics, error) {
		if attempt > 0 {
			s.logger.Info("retrying demographics extraction", zap.Int("attempt", attempt+1))
		}
		return s.extractOnce(ctx, userText, attempt == s.maxRetries)
	})
	if err != nil {
		return domain.UserDemographics{}, err
	}

	d := s.sanitize(raw)

	s.logger.Info("parsed user demographics",
		zap.Any("age", d.Age),
		zap.Any("sex", d.Sex),
		zap.Any("race", d.Race),
	)

	return d, nil
}

// extractOnce performs one extraction attempt. On the final attempt
// invalid enum values no longer fail: they are passed through for
// sanitize to discard.
func (s *Service) extractOnce(ctx context.Context, userText string, final bool) (rawDemographics, error) {
	var zero rawDemographics

	result, err := s.extractor.Extract(ctx, systemPrompt, userText, schema)
	if err != nil {
		metrics.ExtractionRetriesTotal.WithLabelValues(schemaName, "service_error").Inc()
		return zero, domain.Retryable(err)
	}

	if result.Status == domain.StatusIncomplete {
		metrics.ExtractionRetriesTotal.WithLabelValues(schemaName, "incomplete").Inc()
		return zero, domain.Retryable(fmt.Errorf(
			"response incomplete (%s): %w", result.IncompleteReason, domain.ErrParseFailure))
	}

	if result.Value == nil {
		metrics.ExtractionRetriesTotal.WithLabelValues(schemaName, "empty").Inc()
		return zero, domain.Retryable(fmt.Errorf(
			"empty structured output: %w", domain.ErrParseFailure))
	}

	var raw rawDemographics
	if err := json.Unmarshal(result.Value, &raw); err != nil {
		metrics.ExtractionRetriesTotal.WithLabelValues(schemaName, "malformed").Inc()
		return zero, domain.Retryable(fmt.Errorf(
			"malformed structured output: %w", domain.ErrParseFailure))
	}

	if !final {
		if bad, field := invalidEnum(raw); bad {
			metrics.ExtractionRetriesTotal.WithLabelValues(schemaName, "bad_enum").Inc()
			return zero, domain.Retryable(fmt.Errorf(
				"invalid %s value: %w", field, domain.ErrParseFailure))
		}
	}

	return raw, nil
}

func invalidEnum(raw rawDemographics) (bool, string) {
	if raw.Sex != nil {
		if _, ok := domain.ParseSex(*raw.Sex); !ok {
			return true, "sex"
		}
	}
	if raw.Race != nil {
		if _, ok := domain.ParseRace(*raw.Race); !ok {
			return true, "race"
		}
	}
	return false, ""
}

// sanitize discards out-of-enum and out-of-range fields.
func (s *Service) sanitize(raw rawDemographics) domain.UserDemographics {
	var d domain.UserDemographics

	if raw.Age != nil && *raw.Age > 0 && *raw.Age < 125 {
		d.Age = raw.Age
	} else if raw.Age != nil {
		s.logger.Warn("discarding implausible age", zap.Int("age", *raw.Age))
	}

	if raw.Sex != nil {
		if sex, ok := domain.ParseSex(strings.TrimSpace(*raw.Sex)); ok {
			d.Sex = &sex
		} else {
			s.logger.Warn("discarding invalid sex value", zap.String("sex", *raw.Sex))
		}
	}

	if raw.Race != nil {
		if race, ok := domain.ParseRace(strings.TrimSpace(*raw.Race)); ok {
			d.Race = &race
		} else {
			s.logger.Warn("discarding invalid race value", zap.String("race", *raw.Race))
		}
	}

	return d
}
