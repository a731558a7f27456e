package providerfinder

import "github.com/CalebSutherland/AI-Provider-Finder/internal/domain"

// Criteria is the structured form of a free-text provider query.
// Nil fields were not extracted, which is distinct from empty strings.
type Criteria struct {
	Specialty        *string
	Zipcode          *string
	City             *string
	State            *string
	HCPCSPrefix      *string
	HCPCSDescription *string
	Confidence       string
}

// Provider is a single directory row.
type Provider struct {
	ID              int64
	LastName        string
	FirstName       *string
	Credentials     *string
	Street1         string
	Street2         *string
	City            string
	State           string
	Zipcode         string
	Specialty       string
	AcceptsMedicare string
	TotalBenes      int
	AvgAge          float64
}

// ScoredProvider pairs a provider with its demographic match score and
// 1-based dense rank.
type ScoredProvider struct {
	Provider
	Score float64
	Rank  int
}

// Demographics is the requester profile extracted from free text.
// Empty Sex or Race means the attribute was not detected.
type Demographics struct {
	Age  *int
	Sex  string
	Race string
}

// ProviderPage is one page of directory matches plus the unpaginated
// total match count.
type ProviderPage struct {
	Providers []Provider
	Total     int64
}

// RankResult carries the extracted demographics alongside the ranked
// providers. Demographics are populated even when ranking fails so the
// caller can show what was understood.
type RankResult struct {
	Demographics Demographics
	Providers    []ScoredProvider
}

func fromInternalCriteria(c domain.SearchCriteria) Criteria {
	return Criteria{
		Specialty:        c.Specialty,
		Zipcode:          c.Zipcode,
		City:             c.City,
		State:            c.State,
		HCPCSPrefix:      c.HCPCSPrefix,
		HCPCSDescription: c.HCPCSDescription,
		Confidence:       string(c.Confidence),
	}
}

func toInternalCriteria(c Criteria) domain.SearchCriteria {
	return domain.SearchCriteria{
		Specialty:        c.Specialty,
		Zipcode:          c.Zipcode,
		City:             c.City,
		State:            c.State,
		HCPCSPrefix:      c.HCPCSPrefix,
		HCPCSDescription: c.HCPCSDescription,
		Confidence:       domain.Confidence(c.Confidence),
	}
}

func fromInternalProvider(p domain.Provider) Provider {
	return Provider{
		ID:              p.ID,
		LastName:        p.LastName,
		FirstName:       p.FirstName,
		Credentials:     p.Credentials,
		Street1:         p.Street1,
		Street2:         p.Street2,
		City:            p.City,
		State:           p.State,
		Zipcode:         p.Zipcode,
		Specialty:       p.Specialty,
		AcceptsMedicare: p.AcceptsMedicare,
		TotalBenes:      p.TotalBenes,
		AvgAge:          p.AvgAge,
	}
}

func fromInternalDemographics(d domain.UserDemographics) Demographics {
	out := Demographics{Age: d.Age}
	if d.Sex != nil {
		out.Sex = string(*d.Sex)
	}
	if d.Race != nil {
		out.Race = string(*d.Race)
	}
	return out
}
