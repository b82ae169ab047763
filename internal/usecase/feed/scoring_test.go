package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestDistanceKm(t *testing.T) {
	// Berlin to Potsdam is roughly 26 km.
	d := DistanceKm(52.5200, 13.4050, 52.3906, 13.0645)
	assert.InDelta(t, 26, d, 3)

	assert.Zero(t, DistanceKm(52.52, 13.40, 52.52, 13.40))
}

func TestScoreProximityDominates(t *testing.T) {
	near := Score(Criteria{
		SeekerLat: ptr(52.5200), SeekerLon: ptr(13.4050),
		TargetLat: ptr(52.5210), TargetLon: ptr(13.4060),
	})
	far := Score(Criteria{
		SeekerLat: ptr(52.5200), SeekerLon: ptr(13.4050),
		TargetLat: ptr(48.1351), TargetLon: ptr(11.5820),
	})

	assert.Equal(t, 75, near)
	assert.Equal(t, 40, far)
	assert.Greater(t, near, far)
}

func TestScoreCityFallbackWithoutCoordinates(t *testing.T) {
	same := Score(Criteria{SeekerCity: ptr("Berlin"), TargetCity: ptr("Berlin")})
	different := Score(Criteria{SeekerCity: ptr("Berlin"), TargetCity: ptr("Hamburg")})

	assert.Equal(t, 60, same)
	assert.Equal(t, 40, different)
}

func TestScoreUnknownEverythingIsNeutral(t *testing.T) {
	assert.Equal(t, 40, Score(Criteria{}))
}

func TestScoreBonusesAndCap(t *testing.T) {
	full := Score(Criteria{
		SeekerLat: ptr(52.5200), SeekerLon: ptr(13.4050),
		TargetLat: ptr(52.5210), TargetLon: ptr(13.4060),
		SalaryDisclosed: true,
		IsFlex:          true,
	})
	assert.Equal(t, 100, full)
}

func TestScoreEmptyCityNeverMatches(t *testing.T) {
	assert.Equal(t, 40, Score(Criteria{SeekerCity: ptr(""), TargetCity: ptr("")}))
}
