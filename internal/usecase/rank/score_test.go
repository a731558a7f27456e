package rank

import (
	"math"
	"testing"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
)

func sexPtr(s domain.Sex) *domain.Sex    { return &s }
func racePtr(r domain.Race) *domain.Race { return &r }

func profile(id int64) domain.DemographicProfile {
	return domain.DemographicProfile{Provider: domain.Provider{ID: id}}
}

func TestScore_SexOnly(t *testing.T) {
	p := profile(1)
	p.BeneMaleCount = domain.IntPtr(80)
	p.BeneFemaleCount = domain.IntPtr(20)

	u := domain.UserDemographics{Sex: sexPtr(domain.SexMale)}

	got := Score(p, u)
	if got != 32 {
		t.Errorf("score = %v, expected 32 (0.4 x 80)", got)
	}
}

func TestScore_FemaleShare(t *testing.T) {
	p := profile(1)
	p.BeneMaleCount = domain.IntPtr(80)
	p.BeneFemaleCount = domain.IntPtr(20)

	u := domain.UserDemographics{Sex: sexPtr(domain.SexFemale)}

	got := Score(p, u)
	if got != 8 {
		t.Errorf("score = %v, expected 8 (0.4 x 20)", got)
	}
}

func TestScore_SexMissingCounts(t *testing.T) {
	p := profile(1)
	p.BeneMaleCount = domain.IntPtr(80)

	u := domain.UserDemographics{Sex: sexPtr(domain.SexMale)}

	if got := Score(p, u); got != 0 {
		t.Errorf("score = %v, expected 0 when a sex count is unreported", got)
	}
}

func TestScore_AgeBoundaries(t *testing.T) {
	cases := []struct {
		name   string
		age    int
		avgAge float64
		want   float64
	}{
		{"exact match", 70, 70, 20},
		{"thirty year gap", 40, 70, 0},
		{"beyond falloff floored", 25, 70, 0},
		{"half window", 55, 70, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := profile(1)
			p.AvgAge = tc.avgAge
			u := domain.UserDemographics{Age: domain.IntPtr(tc.age)}

			got := Score(p, u)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("score = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestScore_RaceShare(t *testing.T) {
	p := profile(1)
	p.BeneRaceWhiteCount = domain.IntPtr(50)
	p.BeneRaceBlackCount = domain.IntPtr(30)
	p.BeneRaceAsianCount = domain.IntPtr(20)

	u := domain.UserDemographics{Race: racePtr(domain.RaceBlack)}

	got := Score(p, u)
	if got != 12 {
		t.Errorf("score = %v, expected 12 (0.4 x 30)", got)
	}
}

func TestScore_RaceUnreportedBucketsIgnoredInTotal(t *testing.T) {
	p := profile(1)
	p.BeneRaceWhiteCount = domain.IntPtr(60)
	p.BeneRaceHispanicCount = domain.IntPtr(40)

	u := domain.UserDemographics{Race: racePtr(domain.RaceHispanic)}

	got := Score(p, u)
	if got != 16 {
		t.Errorf("score = %v, expected 16 (0.4 x 40)", got)
	}
}

func TestScore_NoRaceCountsReported(t *testing.T) {
	u := domain.UserDemographics{Race: racePtr(domain.RaceWhite)}
	if got := Score(profile(1), u); got != 0 {
		t.Errorf("score = %v, expected 0 with no buckets reported", got)
	}
}

func TestScore_Deterministic(t *testing.T) {
	p := profile(1)
	p.AvgAge = 68.5
	p.BeneMaleCount = domain.IntPtr(55)
	p.BeneFemaleCount = domain.IntPtr(45)
	p.BeneRaceWhiteCount = domain.IntPtr(70)
	p.BeneRaceOtherCount = domain.IntPtr(30)

	u := domain.UserDemographics{
		Age:  domain.IntPtr(72),
		Sex:  sexPtr(domain.SexFemale),
		Race: racePtr(domain.RaceOther),
	}

	first := Score(p, u)
	second := Score(p, u)
	if first != second {
		t.Errorf("scores differ across calls: %v vs %v", first, second)
	}
}

func TestScore_AllAttributesBlend(t *testing.T) {
	p := profile(1)
	p.AvgAge = 70
	p.BeneMaleCount = domain.IntPtr(50)
	p.BeneFemaleCount = domain.IntPtr(50)
	p.BeneRaceWhiteCount = domain.IntPtr(100)

	u := domain.UserDemographics{
		Age:  domain.IntPtr(70),
		Sex:  sexPtr(domain.SexMale),
		Race: racePtr(domain.RaceWhite),
	}

	// 0.4x50 + 0.4x100 + 0.2x100
	got := Score(p, u)
	if math.Abs(got-80) > 1e-9 {
		t.Errorf("score = %v, expected 80", got)
	}
}
