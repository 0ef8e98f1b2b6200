package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/gym-buddy/internal/availability"
	"github.com/oggyb/gym-buddy/internal/domain"
	"github.com/oggyb/gym-buddy/internal/schedule"
)

// Wednesday 2026-10-14 15:42 UTC
var fixedNow = time.Date(2026, 10, 14, 15, 42, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func userWithMask(id string, m availability.Mask, favs ...string) domain.User {
	return domain.User{ID: id, AvailabilityMask: availability.Encode(m), Favorites: favs}
}

func TestFindCommonSlotsOrderAndLimit(t *testing.T) {
	full := availability.Full()
	a := userWithMask("a", full, "gym_a")
	b := userWithMask("b", full, "gym_b")

	slots := schedule.NewFinder(clock).FindCommonSlots(a, b, nil, schedule.Options{})
	require.Len(t, slots, schedule.DefaultMaxResults)

	// today from 08:00, hourly, regardless of the current time of day
	for i, s := range slots {
		assert.Equal(t, time.Date(2026, 10, 14, 8+i, 0, 0, 0, time.UTC), s.Start)
		assert.Equal(t, "gym_a", s.FacilityID)
	}
	assert.Equal(t, 90*time.Minute, slots[0].End().Sub(slots[0].Start))
}

func TestFindCommonSlotsUsesPreferredFacility(t *testing.T) {
	full := availability.Full()
	a := userWithMask("a", full, "gym_a")
	b := userWithMask("b", full)

	slots := schedule.NewFinder(clock).FindCommonSlots(a, b, []string{"gym_common", "gym_other"}, schedule.Options{MaxResults: 2})
	require.Len(t, slots, 2)
	for _, s := range slots {
		assert.Equal(t, "gym_common", s.FacilityID)
	}
}

func TestFindCommonSlotsRespectsWindowAndWeekday(t *testing.T) {
	var a, b availability.Mask
	// Friday (weekday 4): 07:00 outside window, 09:30 off the hourly grid, 18:00 inside.
	for _, slot := range []int{14, 19, 36} {
		a.Set(4, slot)
		b.Set(4, slot)
	}
	// Saturday 12:00 only free for a.
	a.Set(5, 24)

	slots := schedule.NewFinder(clock).FindCommonSlots(userWithMask("a", a), userWithMask("b", b), nil, schedule.Options{})
	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, time.Date(2026, 10, 23, 18, 0, 0, 0, time.UTC), slots[1].Start)
	assert.Equal(t, "", slots[0].FacilityID)
}

func TestFindCommonSlotsStopsMidDay(t *testing.T) {
	full := availability.Full()
	slots := schedule.NewFinder(clock).FindCommonSlots(userWithMask("a", full), userWithMask("b", full), nil, schedule.Options{MaxResults: 3})
	require.Len(t, slots, 3)
	assert.Equal(t, 10, slots[2].Start.Hour())
}

func TestFindCommonSlotsExhaustion(t *testing.T) {
	var a, b availability.Mask
	// disjoint inside the window, overlapping only outside of it
	for day := 0; day < availability.Days; day++ {
		for slot := 16; slot <= 39; slot++ {
			if slot%2 == 0 {
				a.Set(day, slot)
			} else {
				b.Set(day, slot)
			}
		}
		a.Set(day, 2)
		b.Set(day, 2)
		a.Set(day, 44)
		b.Set(day, 44)
	}

	slots := schedule.NewFinder(clock).FindCommonSlots(userWithMask("a", a), userWithMask("b", b), nil, schedule.Options{})
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestFindCommonSlotsShortHorizon(t *testing.T) {
	var a availability.Mask
	a.Set(0, 20) // Monday 10:00
	// Wednesday + 3 days = Wed..Fri, no Monday
	slots := schedule.NewFinder(clock).FindCommonSlots(userWithMask("a", a), userWithMask("b", a), nil, schedule.Options{HorizonDays: 3})
	assert.Empty(t, slots)

	slots = schedule.NewFinder(clock).FindCommonSlots(userWithMask("a", a), userWithMask("b", a), nil, schedule.Options{HorizonDays: 6})
	require.Len(t, slots, 1)
	assert.Equal(t, time.Monday, slots[0].Start.Weekday())
}

func TestMondayIndex(t *testing.T) {
	assert.Equal(t, 0, schedule.MondayIndex(time.Monday))
	assert.Equal(t, 6, schedule.MondayIndex(time.Sunday))
	assert.Equal(t, 5, schedule.MondayIndex(time.Saturday))
}

func TestCommonFacilities(t *testing.T) {
	a := domain.User{Favorites: []string{"g1", "g2", "g3", "g2"}}
	b := domain.User{Favorites: []string{"g3", "g2", "g9"}}
	assert.Equal(t, []string{"g2", "g3"}, schedule.CommonFacilities(a, b))
	assert.Empty(t, schedule.CommonFacilities(a, domain.User{}))
}
