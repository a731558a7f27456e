package rank

import "github.com/CalebSutherland/AI-Provider-Finder/internal/domain"

// Sub-score weights and the age falloff window. These constants define
// the match semantics; changing them changes every score in the system.
const (
	sexWeight  = 0.4
	raceWeight = 0.4
	ageWeight  = 0.2

	maxAgeDiff = 30.0
)

// Score computes the demographic compatibility between a provider's
// beneficiary population and the requesting user, in [0,100]. Pure and
// deterministic. Each sub-score contributes only when the matching user
// attribute is present; an absent attribute scores 0 under its full
// weight rather than redistributing weights.
func Score(p domain.DemographicProfile, u domain.UserDemographics) float64 {
	return sexWeight*sexScore(p, u) +
		raceWeight*raceScore(p, u) +
		ageWeight*ageScore(p, u)
}

// sexScore is the share of the provider's beneficiaries matching the
// user's sex. Requires both counts reported and a nonzero sum.
func sexScore(p domain.DemographicProfile, u domain.UserDemographics) float64 {
	if u.Sex == nil || p.BeneMaleCount == nil || p.BeneFemaleCount == nil {
		return 0
	}
	total := *p.BeneMaleCount + *p.BeneFemaleCount
	if total == 0 {
		return 0
	}
	matching := *p.BeneFemaleCount
	if *u.Sex == domain.SexMale {
		matching = *p.BeneMaleCount
	}
	return float64(matching) / float64(total) * 100
}

// ageScore falls off linearly from 100 at a zero-year difference to 0
// at maxAgeDiff years, floored at zero.
func ageScore(p domain.DemographicProfile, u domain.UserDemographics) float64 {
	if u.Age == nil || p.AvgAge <= 0 {
		return 0
	}
	diff := float64(*u.Age) - p.AvgAge
	if diff < 0 {
		diff = -diff
	}
	score := (maxAgeDiff - diff) / maxAgeDiff * 100
	if score < 0 {
		return 0
	}
	return score
}

// raceScore is the share of the provider's beneficiaries in the bucket
// matching the user's race. Unreported buckets count as zero in the
// total.
func raceScore(p domain.DemographicProfile, u domain.UserDemographics) float64 {
	if u.Race == nil {
		return 0
	}

	var total int
	for _, cnt := range p.RaceCounts() {
		if cnt != nil {
			total += *cnt
		}
	}
	if total == 0 {
		return 0
	}

	var matching int
	if cnt := p.RaceCount(*u.Race); cnt != nil {
		matching = *cnt
	}
	return float64(matching) / float64(total) * 100
}
