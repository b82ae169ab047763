package feed

import "math"

const earthRadiusKm = 6371.0

// DistanceKm computes the great-circle distance between two coordinates
// using the haversine formula.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Criteria captures the comparable attributes of the two sides of a
// candidate pairing. Nil fields mean "unknown" and score neutrally.
type Criteria struct {
	SeekerLat *float64
	SeekerLon *float64
	SeekerCity *string

	TargetLat  *float64
	TargetLon  *float64
	TargetCity *string

	SalaryDisclosed bool
	IsFlex          bool
}

// Score produces a 0–100 heuristic compatibility score. Proximity dominates;
// a shared city, a disclosed salary range and short-notice availability each
// nudge the score up.
func Score(c Criteria) int {
	score := 40

	if dist := distance(c); dist != nil {
		switch {
		case *dist <= 5:
			score += 35
		case *dist <= 25:
			score += 25
		case *dist <= 50:
			score += 12
		case *dist <= 100:
			score += 5
		}
	} else if sameCity(c.SeekerCity, c.TargetCity) {
		score += 20
	}

	if c.SalaryDisclosed {
		score += 15
	}
	if c.IsFlex {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

func distance(c Criteria) *float64 {
	if c.SeekerLat == nil || c.SeekerLon == nil || c.TargetLat == nil || c.TargetLon == nil {
		return nil
	}
	d := DistanceKm(*c.SeekerLat, *c.SeekerLon, *c.TargetLat, *c.TargetLon)
	return &d
}

func sameCity(a, b *string) bool {
	return a != nil && b != nil && *a != "" && *a == *b
}
