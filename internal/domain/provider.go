package domain

// Provider is a single row of the provider directory. The directory is
// the source of truth; the service reads it and never writes back.
type Provider struct {
	ID              int64   `json:"id"`
	LastName        string  `json:"last_name"`
	FirstName       *string `json:"first_name"`
	Credentials     *string `json:"credentials"`
	Street1         string  `json:"street_1"`
	Street2         *string `json:"street_2"`
	City            string  `json:"city"`
	State           string  `json:"state"`
	Zipcode         string  `json:"zipcode"`
	Specialty       string  `json:"specialty"`
	AcceptsMedicare string  `json:"accepts_medicare"`
	TotalBenes      int     `json:"total_benes"`
	AvgAge          float64 `json:"avg_age"`
}

// DemographicProfile extends Provider with aggregate beneficiary counts.
// Counts are pointers: a nil count means the provider did not report the
// bucket, which is not the same as reporting zero.
type DemographicProfile struct {
	Provider

	BeneFemaleCount *int `json:"bene_feml_cnt"`
	BeneMaleCount   *int `json:"bene_male_cnt"`

	BeneRaceWhiteCount    *int `json:"bene_race_wht_cnt"`
	BeneRaceBlackCount    *int `json:"bene_race_black_cnt"`
	BeneRaceAsianCount    *int `json:"bene_race_api_cnt"`
	BeneRaceHispanicCount *int `json:"bene_race_hspnc_cnt"`
	BeneRaceNativeCount   *int `json:"bene_race_nat_ind_cnt"`
	BeneRaceOtherCount    *int `json:"bene_race_othr_cnt"`
}

// RaceCount returns the beneficiary count bucket matching r, or nil when
// the bucket was not reported.
func (p DemographicProfile) RaceCount(r Race) *int {
	switch r {
	case RaceWhite:
		return p.BeneRaceWhiteCount
	case RaceBlack:
		return p.BeneRaceBlackCount
	case RaceAsian:
		return p.BeneRaceAsianCount
	case RaceHispanic:
		return p.BeneRaceHispanicCount
	case RaceNative:
		return p.BeneRaceNativeCount
	case RaceOther:
		return p.BeneRaceOtherCount
	}
	return nil
}

// RaceCounts returns all six buckets in a fixed order. Nil entries mean
// "not reported".
func (p DemographicProfile) RaceCounts() []*int {
	return []*int{
		p.BeneRaceWhiteCount,
		p.BeneRaceBlackCount,
		p.BeneRaceAsianCount,
		p.BeneRaceHispanicCount,
		p.BeneRaceNativeCount,
		p.BeneRaceOtherCount,
	}
}

// ScoredProvider pairs a provider with its demographic match score and
// 1-based dense rank. Never persisted.
type ScoredProvider struct {
	Provider
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}
