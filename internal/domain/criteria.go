package domain

// Confidence is the extractor's self-reported certainty about the
// specialty match.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ValidConfidence reports whether c is one of the three known levels.
func ValidConfidence(c Confidence) bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// SearchCriteria is the structured form of a free-text provider query.
// Optional attributes are pointers: nil means "not extracted", which is
// distinct from an empty string.
type SearchCriteria struct {
	Specialty        *string    `json:"specialty"`
	Zipcode          *string    `json:"zipcode"`
	City             *string    `json:"city"`
	State            *string    `json:"state"`
	HCPCSPrefix      *string    `json:"hcpcs_prefix"`
	HCPCSDescription *string    `json:"hcpcs_description"`
	Confidence       Confidence `json:"confidence"`
}

// HasLocation reports whether the criteria carry at least one usable
// location discriminator: a zipcode, or a state (alone or with a city).
func (c SearchCriteria) HasLocation() bool {
	return c.Zipcode != nil || c.State != nil
}

// Empty reports whether nothing at all was extracted.
func (c SearchCriteria) Empty() bool {
	return c.Specialty == nil && c.Zipcode == nil && c.City == nil &&
		c.State == nil && c.HCPCSPrefix == nil
}

// StringPtr returns a pointer to s. Convenience for building criteria
// and test fixtures.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }
