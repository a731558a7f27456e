package domain

import "strings"

// Sex is a requester-reported sex value.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Race is a requester-reported race value, matching the CMS beneficiary
// race buckets.
type Race string

const (
	RaceWhite    Race = "white"
	RaceBlack    Race = "black"
	RaceAsian    Race = "asian"
	RaceHispanic Race = "hispanic"
	RaceNative   Race = "native"
	RaceOther    Race = "other"
)

// ParseSex maps a free-form value onto the Sex enum, case-insensitively.
// Unknown values return false: the caller discards the field rather than
// failing the request.
func ParseSex(s string) (Sex, bool) {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale, true
	case SexFemale:
		return SexFemale, true
	}
	return "", false
}

// ParseRace maps a free-form value onto the Race enum, case-insensitively.
func ParseRace(s string) (Race, bool) {
	switch r := Race(strings.ToLower(strings.TrimSpace(s))); r {
	case RaceWhite, RaceBlack, RaceAsian, RaceHispanic, RaceNative, RaceOther:
		return r, true
	}
	return "", false
}

// UserDemographics is the requester's stated demographic profile.
// Every field is optional; an all-nil value is a legitimate extraction
// result, not an error.
type UserDemographics struct {
	Age  *int  `json:"age"`
	Sex  *Sex  `json:"sex"`
	Race *Race `json:"race"`
}

// Empty reports whether no demographic attribute was detected.
func (u UserDemographics) Empty() bool {
	return u.Age == nil && u.Sex == nil && u.Race == nil
}
