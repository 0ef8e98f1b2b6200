package scoring

import (
	"math"

	"github.com/oggyb/gym-buddy/internal/domain"
)

const (
	earthRadiusKm = 6371.0
	// neutralDistanceKm stands in for a distance that cannot be computed.
	neutralDistanceKm = 10.0

	sameCityFallback = 0.6
	sameDeptFallback = 0.45
)

// HaversineKm is the great-circle distance between two facilities.
// Missing or invalid coordinates yield the neutral 10 km distance.
func HaversineKm(a, b domain.Facility) float64 {
	if !validCoord(a.Lat, -90, 90) || !validCoord(a.Lon, -180, 180) ||
		!validCoord(b.Lat, -90, 90) || !validCoord(b.Lon, -180, 180) {
		return neutralDistanceKm
	}
	lat1, lon1, lat2, lon2 := *a.Lat, *a.Lon, *b.Lat, *b.Lon

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func validCoord(v *float64, lo, hi float64) bool {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return false
	}
	return *v >= lo && *v <= hi
}

// PairScore scores two facilities. Rules are evaluated in order and the first
// one that applies wins; the last two decay with distance.
func PairScore(a, b domain.Facility) float64 {
	sameCity := a.City == b.City
	sameDept := a.DepartmentCode == b.DepartmentCode
	sameChain := a.ChainID == b.ChainID

	switch {
	case a.ID == b.ID:
		return 1.0
	case sameCity && sameChain:
		return 0.9
	case sameCity:
		return 0.75
	case sameDept && sameChain:
		return 0.7
	case sameDept:
		return 0.55
	case sameChain:
		return distanceScore(HaversineKm(a, b), 0.8)
	default:
		return distanceScore(HaversineKm(a, b), 0.5)
	}
}

func distanceScore(km, ceiling float64) float64 {
	return math.Min(ceiling, math.Max(0, 1-km/10))
}

// ProximityScore returns the best facility-pair score between two favorite
// sets. When that best score is exactly 0 and both users have a profile city,
// the coarse profile location is used instead.
func ProximityScore(favA, favB []domain.Facility, locA, locB domain.Location) float64 {
	best := 0.0
	for _, fa := range favA {
		for _, fb := range favB {
			if s := PairScore(fa, fb); s > best {
				best = s
			}
		}
	}

	if best == 0 && locA.City != "" && locB.City != "" {
		if locA.City == locB.City {
			best = sameCityFallback
		} else if locA.DepartmentCode != "" && locA.DepartmentCode == locB.DepartmentCode {
			best = sameDeptFallback
		}
	}
	return best
}
