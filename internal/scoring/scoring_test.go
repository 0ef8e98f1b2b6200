package scoring_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oggyb/gym-buddy/internal/availability"
	"github.com/oggyb/gym-buddy/internal/domain"
	"github.com/oggyb/gym-buddy/internal/scoring"
)

// Reference facilities: two Paris gyms of the same chain, one of another
// chain, one Lyon gym of the first chain and one without coordinates.
var (
	bastille = domain.Facility{ID: "gym_bf_bastille", ChainID: "chain_basicfit", RegionCode: "IDF", DepartmentCode: "75", City: "Paris", Lat: domain.FloatPtr(48.853), Lon: domain.FloatPtr(2.369)}
	montpar  = domain.Facility{ID: "gym_bf_montparnasse", ChainID: "chain_basicfit", RegionCode: "IDF", DepartmentCode: "75", City: "Paris", Lat: domain.FloatPtr(48.842), Lon: domain.FloatPtr(2.321)}
	repub    = domain.Facility{ID: "gym_fp_republique", ChainID: "chain_fitnesspark", RegionCode: "IDF", DepartmentCode: "75", City: "Paris", Lat: domain.FloatPtr(48.867), Lon: domain.FloatPtr(2.364)}
	boulogne = domain.Facility{ID: "gym_bf_boulogne", ChainID: "chain_basicfit", RegionCode: "IDF", DepartmentCode: "92", City: "Boulogne", Lat: domain.FloatPtr(48.835), Lon: domain.FloatPtr(2.241)}
	vaise    = domain.Facility{ID: "gym_bf_vaise", ChainID: "chain_basicfit", RegionCode: "ARA", DepartmentCode: "69", City: "Lyon", Lat: domain.FloatPtr(45.780), Lon: domain.FloatPtr(4.805)}
	partdieu = domain.Facility{ID: "gym_fp_partdieu", ChainID: "chain_fitnesspark", RegionCode: "ARA", DepartmentCode: "69", City: "Lyon", Lat: domain.FloatPtr(45.760), Lon: domain.FloatPtr(4.861)}
	nowhere  = domain.Facility{ID: "gym_unknown_loc", ChainID: "chain_keepcool", DepartmentCode: "13", City: "Marseille"}

	allFacilities = []domain.Facility{bastille, montpar, repub, boulogne, vaise, partdieu, nowhere}
)

func TestLevelScoreTable(t *testing.T) {
	lvl := domain.IntPtr

	assert.Equal(t, 1.0, scoring.LevelScore(lvl(1), lvl(1)))
	assert.Equal(t, 0.0, scoring.LevelScore(lvl(0), lvl(3)))
	assert.Equal(t, 0.66, scoring.LevelScore(lvl(0), lvl(1)))
	assert.Equal(t, 0.33, scoring.LevelScore(lvl(3), lvl(1)))
}

func TestLevelScoreMissingAndOutOfRange(t *testing.T) {
	lvl := domain.IntPtr

	// missing defaults to 1
	assert.Equal(t, 1.0, scoring.LevelScore(nil, lvl(1)))
	assert.Equal(t, 1.0, scoring.LevelScore(nil, nil))
	assert.Equal(t, 0.33, scoring.LevelScore(nil, lvl(3)))

	// out-of-range clamps
	assert.Equal(t, 1.0, scoring.LevelScore(lvl(-5), lvl(0)))
	assert.Equal(t, 1.0, scoring.LevelScore(lvl(9), lvl(3)))
	assert.Equal(t, 0.0, scoring.LevelScore(lvl(-1), lvl(12)))
}

func TestPairScoreRules(t *testing.T) {
	assert.Equal(t, 1.0, scoring.PairScore(bastille, bastille))
	assert.Equal(t, 0.9, scoring.PairScore(bastille, montpar))
	assert.Equal(t, 0.75, scoring.PairScore(bastille, repub))

	sameDeptSameChain := montpar
	sameDeptSameChain.ID = "gym_bf_other"
	sameDeptSameChain.City = "Paris 2"
	assert.Equal(t, 0.7, scoring.PairScore(bastille, sameDeptSameChain))

	sameDept := repub
	sameDept.City = "Paris 2"
	assert.Equal(t, 0.55, scoring.PairScore(bastille, sameDept))
}

func TestPairScoreSameCityChainIgnoresCoordinates(t *testing.T) {
	far := montpar
	far.Lat = domain.FloatPtr(-33.86)
	far.Lon = domain.FloatPtr(151.2)
	assert.Equal(t, 0.9, scoring.PairScore(bastille, far))

	noCoords := montpar
	noCoords.Lat, noCoords.Lon = nil, nil
	assert.Equal(t, 0.9, scoring.PairScore(bastille, noCoords))
}

func TestPairScoreDistanceFallback(t *testing.T) {
	// same chain, different department, ~10.5km apart
	d := scoring.HaversineKm(bastille, boulogne)
	assert.InDelta(t, 9.5, d, 1.5)
	assert.InDelta(t, math.Min(0.8, math.Max(0, 1-d/10)), scoring.PairScore(bastille, boulogne), 1e-12)

	// same chain, hundreds of km apart
	assert.Equal(t, 0.0, scoring.PairScore(bastille, vaise))

	// neither city, department nor chain in common, far apart
	assert.Equal(t, 0.0, scoring.PairScore(bastille, partdieu))

	// missing coordinates → neutral 10km → 0
	assert.Equal(t, 0.0, scoring.PairScore(bastille, nowhere))
}

func TestPairScoreCloseDifferentChainIsCapped(t *testing.T) {
	a := domain.Facility{ID: "a", ChainID: "x", DepartmentCode: "1", City: "A", Lat: domain.FloatPtr(48.0), Lon: domain.FloatPtr(2.0)}
	b := domain.Facility{ID: "b", ChainID: "y", DepartmentCode: "2", City: "B", Lat: domain.FloatPtr(48.0), Lon: domain.FloatPtr(2.0)}
	assert.Equal(t, 0.5, scoring.PairScore(a, b))

	b.ChainID = "x"
	assert.Equal(t, 0.8, scoring.PairScore(a, b))
}

func TestHaversineInvalidCoordinates(t *testing.T) {
	bad := bastille
	bad.Lat = domain.FloatPtr(math.NaN())
	assert.Equal(t, 10.0, scoring.HaversineKm(bad, montpar))

	bad.Lat = domain.FloatPtr(120)
	assert.Equal(t, 10.0, scoring.HaversineKm(bad, montpar))

	assert.InDelta(t, 0.0, scoring.HaversineKm(bastille, bastille), 1e-9)
}

func TestProximityScoreBestPairAndFallback(t *testing.T) {
	paris := domain.Location{RegionCode: "IDF", DepartmentCode: "75", City: "Paris"}
	lyon := domain.Location{RegionCode: "ARA", DepartmentCode: "69", City: "Lyon"}
	villeurbanne := domain.Location{RegionCode: "ARA", DepartmentCode: "69", City: "Villeurbanne"}

	// best of the Cartesian product
	got := scoring.ProximityScore([]domain.Facility{vaise, bastille}, []domain.Facility{partdieu, montpar}, paris, lyon)
	assert.Equal(t, 0.9, got)

	// no favorites: profile city fallback
	assert.Equal(t, 0.6, scoring.ProximityScore(nil, nil, lyon, lyon))
	assert.Equal(t, 0.45, scoring.ProximityScore(nil, nil, lyon, villeurbanne))
	assert.Equal(t, 0.0, scoring.ProximityScore(nil, nil, paris, lyon))

	// favorites that score exactly 0 also fall back
	assert.Equal(t, 0.6, scoring.ProximityScore([]domain.Facility{bastille}, []domain.Facility{vaise}, lyon, lyon))

	// no city on one profile: no fallback
	assert.Equal(t, 0.0, scoring.ProximityScore(nil, nil, domain.Location{DepartmentCode: "69"}, lyon))
}

func TestFacilitySetResolveDropsUnknown(t *testing.T) {
	set := scoring.NewFacilitySet(allFacilities)
	got := set.Resolve([]string{"gym_bf_bastille", "missing", "gym_bf_bastille", "gym_fp_partdieu"})
	assert.Equal(t, []domain.Facility{bastille, partdieu}, got)
}

func TestEngineAggregateScenario(t *testing.T) {
	engine := scoring.NewEngine(allFacilities)
	full := availability.Encode(availability.Full())

	a := domain.User{ID: "a", Level: domain.IntPtr(1), AvailabilityMask: full, Favorites: []string{"gym_bf_bastille"}}
	b := domain.User{ID: "b", Level: domain.IntPtr(1), AvailabilityMask: full, Favorites: []string{"gym_bf_bastille"}}

	bd := engine.Breakdown(a, b)
	assert.Equal(t, 1.0, bd.Availability)
	assert.Equal(t, 1.0, bd.Proximity)
	assert.Equal(t, 1.0, bd.Level)
	assert.InDelta(t, 1.0, bd.Total, 1e-12)
	assert.Equal(t, bd.Total, engine.Score(a, b))
}

func TestEngineBadMaskDegrades(t *testing.T) {
	engine := scoring.NewEngine(allFacilities)
	a := domain.User{ID: "a", AvailabilityMask: "!!!"}
	b := domain.User{ID: "b", AvailabilityMask: availability.Encode(availability.Full())}

	p := engine.Prepare(a)
	assert.True(t, p.DecodeFail)

	bd := engine.Breakdown(a, b)
	assert.Equal(t, 0.0, bd.Availability)
	// level: both missing → 1.0; proximity 0
	assert.InDelta(t, 0.2, bd.Total, 1e-12)
}

func randomUser(r *rand.Rand, id string) domain.User {
	cities := []domain.Location{
		{RegionCode: "IDF", DepartmentCode: "75", City: "Paris"},
		{RegionCode: "ARA", DepartmentCode: "69", City: "Lyon"},
		{RegionCode: "ARA", DepartmentCode: "69", City: "Villeurbanne"},
		{},
	}
	var favs []string
	n := r.Intn(3)
	for i := 0; i < n; i++ {
		favs = append(favs, allFacilities[r.Intn(len(allFacilities))].ID)
	}
	if r.Intn(4) == 0 {
		favs = append(favs, "unknown")
	}
	var level *int
	if r.Intn(5) > 0 {
		level = domain.IntPtr(r.Intn(6) - 1)
	}
	return domain.User{
		ID:               id,
		Level:            level,
		Favorites:        favs,
		AvailabilityMask: availability.Encode(availability.Random(r, r.Float64())),
		Location:         cities[r.Intn(len(cities))],
	}
}

func TestEngineSymmetryAndBounds(t *testing.T) {
	engine := scoring.NewEngine(allFacilities)
	r := rand.New(rand.NewSource(99))

	for i := 0; i < 200; i++ {
		a := randomUser(r, "a")
		b := randomUser(r, "b")

		ab := engine.Breakdown(a, b)
		ba := engine.Breakdown(b, a)
		assert.Equal(t, ab, ba)

		for _, v := range []float64{ab.Availability, ab.Proximity, ab.Level, ab.Total} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0+1e-12)
		}

		// prepared and raw paths agree
		assert.Equal(t, ab.Total, engine.ScorePrepared(engine.Prepare(a), engine.Prepare(b)))
	}
}
