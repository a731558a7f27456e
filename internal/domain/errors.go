package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParseFailure signals that extraction produced no usable
	// structure after exhausting retries. Client fault: the user
	// should rephrase.
	ErrParseFailure = errors.New("could not parse query")
	// ErrServiceFailure signals that the extraction capability or the
	// directory store is unreachable or erroring. Upstream fault.
	ErrServiceFailure = errors.New("extraction service unavailable")
	// ErrValidationFailure signals structurally valid extraction that
	// is missing required business fields.
	ErrValidationFailure = errors.New("missing required fields")
	// ErrInternal signals an unanticipated failure. Its message is
	// never surfaced to callers.
	ErrInternal = errors.New("internal error")

	// ErrProviderNotFound signals a missing provider record.
	ErrProviderNotFound = errors.New("provider not found")
)

// MissingFieldsError lists every structurally required field absent from
// extracted criteria. Validation collects all gaps in one pass so the
// caller can present a single consolidated message.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("could not determine: %s. Please provide more details",
		strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error { return ErrValidationFailure }

// NewMissingFields creates a MissingFieldsError. Fields keep the order
// in which validation discovered them.
func NewMissingFields(fields ...string) error {
	return &MissingFieldsError{Fields: fields}
}
