// Package schedule finds common training slots for two users.
package schedule

import (
	"time"

	"github.com/oggyb/gym-buddy/internal/availability"
	"github.com/oggyb/gym-buddy/internal/domain"
)

const (
	DefaultHorizonDays = 14
	DefaultMaxResults  = 5

	// The convenience window spans 08:00–20:00, sampled every hour.
	windowFirstSlot = 16
	windowLastSlot  = 39
	windowStep      = 2

	// SessionDuration is applied by callers when rendering or exporting a slot.
	SessionDuration = 90 * time.Minute
)

// Slot is a proposed session start at a facility.
type Slot struct {
	FacilityID string
	Start      time.Time
}

// End returns the session end using SessionDuration.
func (s Slot) End() time.Time {
	return s.Start.Add(SessionDuration)
}

// Options tune a slot search. Zero values fall back to the defaults.
type Options struct {
	HorizonDays int
	MaxResults  int
}

// Finder searches common free slots relative to a clock.
type Finder struct {
	now func() time.Time
}

// NewFinder creates a Finder. A nil clock uses time.Now.
func NewFinder(now func() time.Time) *Finder {
	if now == nil {
		now = time.Now
	}
	return &Finder{now: now}
}

// FindCommonSlots walks the next HorizonDays days starting today and returns
// hourly starts inside 08:00–20:00 where both users are free.
//
// Every slot carries the first preferred facility id, or a's first favorite
// when none is given. The search stops as soon as MaxResults slots are found;
// an empty result means the users should widen their availability.
func (f *Finder) FindCommonSlots(a, b domain.User, preferredFacilityIDs []string, opts Options) []Slot {
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = DefaultHorizonDays
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}

	maskA := availability.DecodeOrEmpty(a.AvailabilityMask)
	maskB := availability.DecodeOrEmpty(b.AvailabilityMask)
	facilityID := pickFacility(a, preferredFacilityIDs)

	now := f.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	slots := make([]Slot, 0, opts.MaxResults)
	for day := 0; day < opts.HorizonDays; day++ {
		date := today.AddDate(0, 0, day)
		weekday := MondayIndex(date.Weekday())

		for slot := windowFirstSlot; slot <= windowLastSlot; slot += windowStep {
			idx := availability.Index(weekday, slot)
			if !maskA[idx] || !maskB[idx] {
				continue
			}
			start := time.Date(date.Year(), date.Month(), date.Day(), slot/2, (slot%2)*30, 0, 0, date.Location())
			slots = append(slots, Slot{FacilityID: facilityID, Start: start})
			if len(slots) >= opts.MaxResults {
				return slots
			}
		}
	}
	return slots
}

// MondayIndex converts a time.Weekday (Sunday=0) to a Monday-based index.
func MondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func pickFacility(a domain.User, preferred []string) string {
	for _, id := range preferred {
		if id != "" {
			return id
		}
	}
	if len(a.Favorites) > 0 {
		return a.Favorites[0]
	}
	return ""
}

// CommonFacilities returns a's favorites that b also favors, in a's order.
func CommonFacilities(a, b domain.User) []string {
	theirs := make(map[string]struct{}, len(b.Favorites))
	for _, id := range b.Favorites {
		theirs[id] = struct{}{}
	}
	var out []string
	for _, id := range domain.DedupeIDs(a.Favorites) {
		if _, ok := theirs[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
