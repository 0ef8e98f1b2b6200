// Package search filters the user directory by explicit criteria.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/oggyb/gym-buddy/internal/availability"
	"github.com/oggyb/gym-buddy/internal/domain"
	"github.com/oggyb/gym-buddy/internal/recommend"
	"github.com/oggyb/gym-buddy/internal/scoring"
)

// Criteria narrows the directory. Empty/nil fields do not filter.
type Criteria struct {
	Level          *int
	Weekday        *int // 0 = Monday; keeps users with any free slot that day
	ChainID        string
	RegionCode     string
	DepartmentCode string
	City           string
	// Text matches "<facility name> <facility city>" of any favorite,
	// ignoring case and accents.
	Text string
}

// Filter returns the users of snap matching c, scored against the current
// user and ordered like recommendations. The current user is never returned.
func Filter(snap domain.Snapshot, c Criteria, engine *scoring.Engine) []recommend.Scored {
	text := Normalize(strings.TrimSpace(c.Text))
	facilities := engine.Facilities()
	me := engine.Prepare(snap.CurrentUser)

	out := make([]recommend.Scored, 0)
	for _, u := range snap.Users {
		if u.ID == snap.CurrentUser.ID {
			continue
		}
		if !matches(u, c, text, facilities) {
			continue
		}
		bd := engine.BreakdownPrepared(me, engine.Prepare(u))
		out = append(out, recommend.Scored{User: u, Score: bd.Total, Breakdown: bd})
	}
	recommend.SortByScore(out)
	return out
}

func matches(u domain.User, c Criteria, text string, facilities scoring.FacilitySet) bool {
	if c.Level != nil && (u.Level == nil || *u.Level != *c.Level) {
		return false
	}
	if c.RegionCode != "" && u.RegionCode != c.RegionCode {
		return false
	}
	if c.DepartmentCode != "" && u.DepartmentCode != c.DepartmentCode {
		return false
	}
	if c.City != "" && u.City != c.City {
		return false
	}

	favs := facilities.Resolve(u.Favorites)
	if c.ChainID != "" && !anyFacility(favs, func(f domain.Facility) bool { return f.ChainID == c.ChainID }) {
		return false
	}
	if text != "" && !anyFacility(favs, func(f domain.Facility) bool {
		return strings.Contains(Normalize(f.Name+" "+f.City), text)
	}) {
		return false
	}

	if c.Weekday != nil && *c.Weekday >= 0 {
		if !availability.DecodeOrEmpty(u.AvailabilityMask).HasAnyOn(*c.Weekday) {
			return false
		}
	}
	return true
}

func anyFacility(favs []domain.Facility, pred func(domain.Facility) bool) bool {
	for _, f := range favs {
		if pred(f) {
			return true
		}
	}
	return false
}

// Normalize lowercases s and strips combining marks, so "Rhône" matches "rhone".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
