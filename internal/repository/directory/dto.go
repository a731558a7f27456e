package directory

import (
	"strconv"
	"strings"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
)

// BuildHashFields flattens a provider into hash fields for storage.
// Optional fields are simply omitted; absence round-trips to nil.
func BuildHashFields(p domain.Provider, hcpcsCodes []string) map[string]string {
	m := map[string]string{
		"id":               strconv.FormatInt(p.ID, 10),
		"last_name":        p.LastName,
		"street_1":         p.Street1,
		"city":             p.City,
		"state":            p.State,
		"zipcode":          p.Zipcode,
		"specialty":        p.Specialty,
		"accepts_medicare": p.AcceptsMedicare,
		"total_benes":      strconv.Itoa(p.TotalBenes),
		"avg_age":          strconv.FormatFloat(p.AvgAge, 'f', -1, 64),
	}
	setOptional(m, "first_name", p.FirstName)
	setOptional(m, "credentials", p.Credentials)
	setOptional(m, "street_2", p.Street2)
	if len(hcpcsCodes) > 0 {
		m["hcpcs"] = strings.Join(hcpcsCodes, ",")
	}
	return m
}

func setOptional(m map[string]string, field string, v *string) {
	if v != nil {
		m[field] = *v
	}
}

// parseProvider reconstructs a provider from hash fields. Malformed
// numerics collapse to zero values rather than failing the row.
func parseProvider(fields map[string]string) domain.Provider {
	id, _ := strconv.ParseInt(fields["id"], 10, 64)
	totalBenes, _ := strconv.Atoi(fields["total_benes"])
	avgAge, _ := strconv.ParseFloat(fields["avg_age"], 64)

	return domain.Provider{
		ID:              id,
		LastName:        fields["last_name"],
		FirstName:       optional(fields, "first_name"),
		Credentials:     optional(fields, "credentials"),
		Street1:         fields["street_1"],
		Street2:         optional(fields, "street_2"),
		City:            fields["city"],
		State:           fields["state"],
		Zipcode:         fields["zipcode"],
		Specialty:       fields["specialty"],
		AcceptsMedicare: fields["accepts_medicare"],
		TotalBenes:      totalBenes,
		AvgAge:          avgAge,
	}
}

func optional(fields map[string]string, name string) *string {
	v, ok := fields[name]
	if !ok {
		return nil
	}
	return &v
}
