package lifecycle

import (
	"math/rand"
	"sync"

	"github.com/oggyb/gym-buddy/internal/domain"
)

// MatchingPolicy decides whether a like turns into a match.
// prior holds every earlier decision between the two users, in both directions.
type MatchingPolicy interface {
	ShouldMatch(like domain.Decision, prior []domain.Decision) bool
}

// PolicyFunc adapts a function to MatchingPolicy.
type PolicyFunc func(like domain.Decision, prior []domain.Decision) bool

func (f PolicyFunc) ShouldMatch(like domain.Decision, prior []domain.Decision) bool {
	return f(like, prior)
}

// AlwaysMatch matches on every like.
var AlwaysMatch = PolicyFunc(func(domain.Decision, []domain.Decision) bool { return true })

// NeverMatch never matches. Handy when matches are created out of band.
var NeverMatch = PolicyFunc(func(domain.Decision, []domain.Decision) bool { return false })

// MutualLike matches when the target already liked the swiper.
var MutualLike = PolicyFunc(func(like domain.Decision, prior []domain.Decision) bool {
	for _, d := range prior {
		if d.SwiperID == like.TargetID && d.TargetID == like.SwiperID && d.Value == domain.DecisionLike {
			return true
		}
	}
	return false
})

// Probabilistic matches each like with probability P.
type Probabilistic struct {
	P float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewProbabilistic creates a policy drawing from rng. p is clamped to [0,1].
func NewProbabilistic(p float64, rng *rand.Rand) *Probabilistic {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return &Probabilistic{P: p, rng: rng}
}

func (p *Probabilistic) ShouldMatch(domain.Decision, []domain.Decision) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64() < p.P
}

// PolicyByName resolves a configured policy name. Unknown names fall back to MutualLike.
func PolicyByName(name string, probability float64, rng *rand.Rand) MatchingPolicy {
	switch name {
	case "always":
		return AlwaysMatch
	case "never":
		return NeverMatch
	case "probabilistic":
		return NewProbabilistic(probability, rng)
	default:
		return MutualLike
	}
}
