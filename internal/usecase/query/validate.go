package query

import "github.com/CalebSutherland/AI-Provider-Finder/internal/domain"

// Validate enforces the cross-field rules a directory lookup needs:
// a specialty, a resolvable location (zipcode, or state with or without
// city), and a procedure prefix when the caller requires one. All gaps
// are collected in a single pass so the caller can present one
// consolidated message.
func Validate(c domain.SearchCriteria, requireProcedure bool) error {
	var missing []string

	if c.Specialty == nil {
		missing = append(missing, "specialty")
	}
	if !c.HasLocation() {
		missing = append(missing, "location")
	}
	if requireProcedure && c.HCPCSPrefix == nil {
		missing = append(missing, "procedure")
	}

	if len(missing) > 0 {
		return domain.NewMissingFields(missing...)
	}
	return nil
}
