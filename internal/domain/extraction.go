package domain

import (
	"context"
	"encoding/json"
	"errors"
)

// ExtractionStatus reports whether the capability produced a complete
// structured response.
type ExtractionStatus string

const (
	// StatusComplete means the capability returned a full structured value.
	StatusComplete ExtractionStatus = "complete"
	// StatusIncomplete means the response was truncated or cut off and
	// is eligible for a retry.
	StatusIncomplete ExtractionStatus = "incomplete"
)

// Extraction is the outcome of a single call to the extraction
// capability. Value is nil when the capability returned no parsed
// structure; callers must treat that and StatusIncomplete as distinct,
// retry-eligible shapes.
type Extraction struct {
	Status           ExtractionStatus
	Value            json.RawMessage
	IncompleteReason string
}

// Schema describes the structured response the capability must produce.
type Schema struct {
	Name       string
	Definition json.RawMessage
}

// Extractor is the language-understanding capability boundary: given a
// system prompt, user text and a target schema, return a best-effort
// structured guess or fail. Transport and availability errors come back
// as errors wrapping ErrServiceFailure; cancellation and timeouts are
// the implementation's concern.
type Extractor interface {
	Extract(ctx context.Context, systemPrompt, userText string, schema Schema) (Extraction, error)
}

// retryableError marks an error as retry-eligible for Attempt.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks err as retry-eligible. Attempt re-runs its function
// only for errors carrying this marker.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// IsRetryable reports whether err carries the retry-eligible marker.
func IsRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

// Attempt runs fn up to budget+1 times, sequentially, with no backoff.
// Each failure is classified before looping: retry-eligible errors are
// retried until the budget is exhausted, terminal errors surface
// immediately. The final error loses its retry marker.
func Attempt[T any](budget int, fn func(attempt int) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt <= budget; attempt++ {
		v, err := fn(attempt)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			break
		}
	}
	var re *retryableError
	if errors.As(lastErr, &re) {
		lastErr = re.err
	}
	return zero, lastErr
}
