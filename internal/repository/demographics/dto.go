package demographics

import (
	"strconv"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
)

// Hash field names for the per-sex and per-race beneficiary counts,
// matching the CMS column names the directory is seeded from.
const (
	fieldFemaleCount = "bene_feml_cnt"
	fieldMaleCount   = "bene_male_cnt"

	fieldRaceWhite    = "bene_race_wht_cnt"
	fieldRaceBlack    = "bene_race_black_cnt"
	fieldRaceAsian    = "bene_race_api_cnt"
	fieldRaceHispanic = "bene_race_hspnc_cnt"
	fieldRaceNative   = "bene_race_nat_ind_cnt"
	fieldRaceOther    = "bene_race_othr_cnt"
)

// parseProfile reconstructs a demographic profile from hash fields.
// A count field that is absent or non-numeric stays nil: the provider
// did not report that bucket.
func parseProfile(fields map[string]string) domain.DemographicProfile {
	id, _ := strconv.ParseInt(fields["id"], 10, 64)
	totalBenes, _ := strconv.Atoi(fields["total_benes"])
	avgAge, _ := strconv.ParseFloat(fields["avg_age"], 64)

	p := domain.DemographicProfile{
		Provider: domain.Provider{
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
		},
		BeneFemaleCount:       count(fields, fieldFemaleCount),
		BeneMaleCount:         count(fields, fieldMaleCount),
		BeneRaceWhiteCount:    count(fields, fieldRaceWhite),
		BeneRaceBlackCount:    count(fields, fieldRaceBlack),
		BeneRaceAsianCount:    count(fields, fieldRaceAsian),
		BeneRaceHispanicCount: count(fields, fieldRaceHispanic),
		BeneRaceNativeCount:   count(fields, fieldRaceNative),
		BeneRaceOtherCount:    count(fields, fieldRaceOther),
	}

	return p
}

// BuildCountFields flattens the nullable count buckets for storage.
// Nil buckets are omitted so absence survives the round trip.
func BuildCountFields(p domain.DemographicProfile) map[string]string {
	m := make(map[string]string, 8)
	setCount(m, fieldFemaleCount, p.BeneFemaleCount)
	setCount(m, fieldMaleCount, p.BeneMaleCount)
	setCount(m, fieldRaceWhite, p.BeneRaceWhiteCount)
	setCount(m, fieldRaceBlack, p.BeneRaceBlackCount)
	setCount(m, fieldRaceAsian, p.BeneRaceAsianCount)
	setCount(m, fieldRaceHispanic, p.BeneRaceHispanicCount)
	setCount(m, fieldRaceNative, p.BeneRaceNativeCount)
	setCount(m, fieldRaceOther, p.BeneRaceOtherCount)
	return m
}

func setCount(m map[string]string, field string, v *int) {
	if v != nil {
		m[field] = strconv.Itoa(*v)
	}
}

func count(fields map[string]string, name string) *int {
	v, ok := fields[name]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func optional(fields map[string]string, name string) *string {
	v, ok := fields[name]
	if !ok {
		return nil
	}
	return &v
}
