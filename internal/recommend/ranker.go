// Package recommend orders candidate buddies for a user.
package recommend

import (
	"sort"

	"github.com/oggyb/gym-buddy/internal/domain"
	"github.com/oggyb/gym-buddy/internal/scoring"
)

// DefaultLimit is used when the caller passes a non-positive limit.
const DefaultLimit = 20

// Scored is a candidate together with its compatibility breakdown.
type Scored struct {
	User  domain.User
	Score float64
	scoring.Breakdown
}

// Ranker produces recommendation lists with a scoring engine.
type Ranker struct {
	engine *scoring.Engine
}

// NewRanker creates a Ranker.
func NewRanker(engine *scoring.Engine) *Ranker {
	return &Ranker{engine: engine}
}

// DecidedTargets returns the set of targets swiperID already liked or passed.
func DecidedTargets(swiperID string, decisions []domain.Decision) map[string]struct{} {
	seen := make(map[string]struct{})
	for _, d := range decisions {
		if d.SwiperID == swiperID {
			seen[d.TargetID] = struct{}{}
		}
	}
	return seen
}

// Recommend scores every candidate in pool that forUser has not decided on yet
// and returns the best ones first.
//
// Behavior:
//   - forUser itself is never returned.
//   - Any prior like or pass from forUser suppresses the target.
//   - Ties are broken by user id so the output is reproducible.
//   - At most limit entries are returned (DefaultLimit if limit <= 0).
func (r *Ranker) Recommend(forUser domain.User, pool []domain.User, decisions []domain.Decision, limit int) []Scored {
	if limit <= 0 {
		limit = DefaultLimit
	}
	seen := DecidedTargets(forUser.ID, decisions)

	me := r.engine.Prepare(forUser)
	out := make([]Scored, 0, len(pool))
	for _, u := range pool {
		if u.ID == forUser.ID {
			continue
		}
		if _, ok := seen[u.ID]; ok {
			continue
		}
		bd := r.engine.BreakdownPrepared(me, r.engine.Prepare(u))
		out = append(out, Scored{User: u, Score: bd.Total, Breakdown: bd})
	}

	SortByScore(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SortByScore orders by score descending, then by user id ascending.
func SortByScore(items []Scored) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].User.ID < items[j].User.ID
	})
}
