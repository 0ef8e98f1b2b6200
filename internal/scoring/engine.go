// Package scoring computes gym-buddy compatibility between two profiles.
package scoring

import (
	"github.com/oggyb/gym-buddy/internal/availability"
	"github.com/oggyb/gym-buddy/internal/domain"
)

// Weights of the three signals in the aggregate score.
const (
	AvailabilityWeight = 0.4
	ProximityWeight    = 0.4
	LevelWeight        = 0.2
)

// Breakdown holds the individual signals next to the aggregate score.
type Breakdown struct {
	Availability float64
	Proximity    float64
	Level        float64
	Total        float64
}

// Prepared is a profile with its mask decoded and favorites resolved,
// so that one side of many comparisons is only prepared once.
type Prepared struct {
	User       domain.User
	Mask       availability.Mask
	Favorites  []domain.Facility
	DecodeFail bool
}

// Engine scores user pairs against a fixed facility reference set.
type Engine struct {
	facilities FacilitySet
}

// NewEngine creates an Engine over the given facilities.
func NewEngine(facilities []domain.Facility) *Engine {
	return &Engine{facilities: NewFacilitySet(facilities)}
}

// Facilities exposes the reference set the engine scores against.
func (e *Engine) Facilities() FacilitySet {
	return e.facilities
}

// Prepare decodes u's mask and resolves its favorites. An undecodable mask is
// treated as fully unavailable.
func (e *Engine) Prepare(u domain.User) Prepared {
	m, err := availability.Decode(u.AvailabilityMask)
	return Prepared{
		User:       u,
		Mask:       m,
		Favorites:  e.facilities.Resolve(u.Favorites),
		DecodeFail: err != nil,
	}
}

// Score returns the weighted compatibility of a and b in [0,1].
func (e *Engine) Score(a, b domain.User) float64 {
	return e.Breakdown(a, b).Total
}

// Breakdown returns every signal for the pair.
func (e *Engine) Breakdown(a, b domain.User) Breakdown {
	return e.BreakdownPrepared(e.Prepare(a), e.Prepare(b))
}

// ScorePrepared is Score over already prepared profiles.
func (e *Engine) ScorePrepared(a, b Prepared) float64 {
	return e.BreakdownPrepared(a, b).Total
}

// BreakdownPrepared is Breakdown over already prepared profiles.
func (e *Engine) BreakdownPrepared(a, b Prepared) Breakdown {
	bd := Breakdown{
		Availability: availability.Similarity(a.Mask, b.Mask),
		Proximity:    ProximityScore(a.Favorites, b.Favorites, a.User.Location, b.User.Location),
		Level:        LevelScore(a.User.Level, b.User.Level),
	}
	bd.Total = AvailabilityWeight*bd.Availability +
		ProximityWeight*bd.Proximity +
		LevelWeight*bd.Level
	return bd
}
