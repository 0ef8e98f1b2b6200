package db

import (
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/oggyb/gym-buddy/internal/availability"
)

// DemoUserID is the id of the seeded demo account.
const DemoUserID = "me"

var demoChains = []Chain{
	{ID: "chain_basicfit", Name: "Basic-Fit"},
	{ID: "chain_fitnesspark", Name: "Fitness Park"},
	{ID: "chain_neoness", Name: "Neoness"},
	{ID: "chain_keepcool", Name: "Keepcool"},
	{ID: "chain_orange_bleue", Name: "L'Orange Bleue"},
	{ID: "chain_lappart", Name: "L'Appart Fitness"},
	{ID: "chain_magic_form", Name: "Magic Form"},
	{ID: "chain_amazonia", Name: "Amazonia"},
	{ID: "chain_cercles_forme", Name: "Cercles de la Forme"},
	{ID: "chain_wellness", Name: "Wellness Sport Club"},
	{ID: "chain_vita_liberte", Name: "Vita Liberté"},
}

func gym(id, chain, name, region, dept, city string, lat, lon float64) Facility {
	return Facility{ID: id, ChainID: chain, Name: name, RegionCode: region, DepartmentCode: dept, City: city, Lat: &lat, Lon: &lon}
}

var demoFacilities = []Facility{
	gym("gym_bf_bastille", "chain_basicfit", "Basic-Fit Bastille", "IDF", "75", "Paris", 48.853, 2.369),
	gym("gym_bf_montparnasse", "chain_basicfit", "Basic-Fit Montparnasse", "IDF", "75", "Paris", 48.842, 2.321),
	gym("gym_fp_republique", "chain_fitnesspark", "Fitness Park République", "IDF", "75", "Paris", 48.867, 2.364),
	gym("gym_neoness_bourse", "chain_neoness", "Neoness Bourse", "IDF", "75", "Paris", 48.868, 2.341),
	gym("gym_keepcool_lazare", "chain_keepcool", "Keepcool Saint-Lazare", "IDF", "75", "Paris", 48.876, 2.325),
	gym("gym_cercles_diderot", "chain_cercles_forme", "Cercles de la Forme Diderot", "IDF", "75", "Paris", 48.842, 2.386),
	gym("gym_fp_partdieu", "chain_fitnesspark", "Fitness Park Part-Dieu", "ARA", "69", "Lyon", 45.760, 4.861),
	gym("gym_lappart_bellecour", "chain_lappart", "L'Appart Fitness Bellecour", "ARA", "69", "Lyon", 45.757, 4.835),
	gym("gym_bf_vaise", "chain_basicfit", "Basic-Fit Vaise", "ARA", "69", "Lyon", 45.780, 4.805),
	gym("gym_wellness_lyon", "chain_wellness", "Wellness Sport Club Lyon", "ARA", "69", "Lyon", 45.757, 4.845),
	gym("gym_orange_villeurbanne", "chain_orange_bleue", "L'Orange Bleue Villeurbanne", "ARA", "69", "Villeurbanne", 45.770, 4.880),
	gym("gym_keepcool_prado", "chain_keepcool", "Keepcool Prado", "PAC", "13", "Marseille", 43.273, 5.394),
	gym("gym_bf_joliette", "chain_basicfit", "Basic-Fit La Joliette", "PAC", "13", "Marseille", 43.309, 5.369),
	gym("gym_vita_marseille", "chain_vita_liberte", "Vita Liberté Marseille", "PAC", "13", "Marseille", 43.296, 5.370),
	gym("gym_magic_bordeaux", "chain_magic_form", "Magic Form Bordeaux", "NAQ", "33", "Bordeaux", 44.837, -0.579),
	gym("gym_amazonia_bordeaux", "chain_amazonia", "Amazonia Bordeaux", "NAQ", "33", "Bordeaux", 44.840, -0.580),
	gym("gym_fp_blagnac", "chain_fitnesspark", "Fitness Park Blagnac", "OCC", "31", "Toulouse", 43.629, 1.363),
	gym("gym_keepcool_capitole", "chain_keepcool", "Keepcool Capitole", "OCC", "31", "Toulouse", 43.604, 1.444),
	gym("gym_bf_lille", "chain_basicfit", "Basic-Fit Lille Centre", "HDF", "59", "Lille", 50.631, 3.058),
	gym("gym_orange_rennes", "chain_orange_bleue", "L'Orange Bleue Rennes", "BRE", "35", "Rennes", 48.117, -1.677),
	gym("gym_bf_nantes", "chain_basicfit", "Basic-Fit Nantes Centre", "PL", "44", "Nantes", 47.218, -1.553),
	gym("gym_fp_strasbourg", "chain_fitnesspark", "Fitness Park Strasbourg", "GE", "67", "Strasbourg", 48.583, 7.745),
}

var (
	demoNames = []string{
		"Léa", "Maxime", "Sofia", "Yann", "Camille", "Nina", "Rayan", "Eva", "Mehdi", "Zoé",
		"Thomas", "Sarah", "Antoine", "Noah", "Maya", "Hugo", "Lola", "Adam", "Chloé", "Lucas",
	}
	demoGoals = []string{"Force", "Hypertrophie", "Perte de poids", "Endurance"}
	demoBios  = map[int]string{
		0: "Je débute, motivé(e) pour apprendre les bases.",
		1: "Régulier(ère), objectif recomposition corporelle.",
		2: "Avancé(e), split push/pull/legs, focus progression.",
		3: "Prépa compétition, rigueur et intensité.",
	}
)

// SeedDemoData resets the database and populates reference data and demo profiles.
//
// Behavior:
//  1. Clears every table.
//  2. Inserts 11 chains and 22 facilities.
//  3. Creates the demo account "me" (password "demo123") and 20 random profiles
//     with 1–2 favorite gyms and a 20–60% filled availability mask.
//
// Compatible with both MySQL and SQLite.
func SeedDemoData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if err := clearAll(db); err != nil {
		return err
	}
	log.Println("Cleared existing data")

	if err := db.Create(&demoChains).Error; err != nil {
		return fmt.Errorf("failed to seed chains: %w", err)
	}
	if err := db.Create(&demoFacilities).Error; err != nil {
		return fmt.Errorf("failed to seed facilities: %w", err)
	}
	log.Printf("Seeded %d chains and %d facilities.", len(demoChains), len(demoFacilities))

	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	level := 1
	me := User{
		ID:               DemoUserID,
		Name:             "Alex",
		Email:            "alex@example.com",
		PasswordHash:     string(hash),
		PhotoURL:         avatar("Alex"),
		Level:            &level,
		Goal:             "Hypertrophie",
		Bio:              "Motivé pour progresser en force et hypertrophie. Bench day addict.",
		BirthDate:        "1995-01-01",
		AvailabilityMask: availability.Encode(availability.Random(r, 0.35)),
		RegionCode:       "IDF",
		DepartmentCode:   "75",
		City:             "Paris",
		Active:           true,
		LastLoginAt:      time.Now(),
		Favorites: []UserFavorite{
			{UserID: DemoUserID, FacilityID: demoFacilities[0].ID, Position: 0},
			{UserID: DemoUserID, FacilityID: demoFacilities[2].ID, Position: 1},
		},
	}
	if err := db.Create(&me).Error; err != nil {
		return fmt.Errorf("failed to seed demo account: %w", err)
	}

	for idx, name := range demoNames {
		u := demoUser(r, idx, name, string(hash))
		if err := db.Create(&u).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
	}
	log.Printf("Seeded %d users.", len(demoNames)+1)

	return nil
}

func demoUser(r *rand.Rand, idx int, name, hash string) User {
	id := fmt.Sprintf("u_%d", idx)
	level := r.Intn(4)

	favIDs := []string{demoFacilities[r.Intn(len(demoFacilities))].ID}
	if r.Float64() > 0.6 {
		favIDs = append(favIDs, demoFacilities[r.Intn(len(demoFacilities))].ID)
	}
	var favs []UserFavorite
	for pos, fid := range favIDs {
		if pos > 0 && fid == favIDs[0] {
			continue
		}
		favs = append(favs, UserFavorite{UserID: id, FacilityID: fid, Position: pos})
	}

	home := demoFacilities[r.Intn(len(demoFacilities))]
	return User{
		ID:               id,
		Name:             name,
		Email:            fmt.Sprintf("user%d@example.com", idx),
		PasswordHash:     hash,
		PhotoURL:         avatar(name),
		Level:            &level,
		Goal:             demoGoals[r.Intn(len(demoGoals))],
		Bio:              demoBios[level],
		BirthDate:        randomBirthDate(r, 18, 55),
		AvailabilityMask: availability.Encode(availability.Random(r, 0.2+r.Float64()*0.4)),
		RegionCode:       home.RegionCode,
		DepartmentCode:   home.DepartmentCode,
		City:             home.City,
		Active:           true,
		LastLoginAt:      time.Now().Add(-time.Duration(r.Intn(500)) * time.Hour),
		Favorites:        favs,
	}
}

func avatar(name string) string {
	return "https://api.dicebear.com/7.x/thumbs/svg?seed=" + url.QueryEscape(name)
}

func randomBirthDate(r *rand.Rand, minAge, maxAge int) string {
	age := minAge + r.Intn(maxAge-minAge+1)
	d := time.Date(time.Now().Year()-age, time.Month(r.Intn(12)+1), r.Intn(28)+1, 0, 0, 0, 0, time.UTC)
	return d.Format(time.DateOnly)
}

func clearAll(db *gorm.DB) error {
	tables := []string{"message_reactions", "messages", "chat_threads", "matches", "decisions", "user_favorites", "users", "facilities", "chains"}
	for _, tbl := range tables {
		if err := db.Exec("DELETE FROM " + tbl).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", tbl, err)
		}
	}
	return nil
}

// SeedMinimalTestData wipes the database and inserts a small deterministic
// dataset: two Paris gyms of one chain, one Lyon gym, and three users.
//
//   - u1 (level 1, Bastille, free Mon–Sun 08:00–20:00)
//   - u2 (level 1, Bastille, same mask as u1)
//   - u3 (level 3, Lyon gym, free only at night)
func SeedMinimalTestData(db *gorm.DB) error {
	if err := clearAll(db); err != nil {
		return err
	}

	lat1, lon1, lat2, lon2, lat3, lon3 := 48.853, 2.369, 48.842, 2.321, 45.760, 4.861
	facilities := []Facility{
		{ID: "gym_bf_bastille", ChainID: "chain_basicfit", Name: "Basic-Fit Bastille", RegionCode: "IDF", DepartmentCode: "75", City: "Paris", Lat: &lat1, Lon: &lon1},
		{ID: "gym_bf_montparnasse", ChainID: "chain_basicfit", Name: "Basic-Fit Montparnasse", RegionCode: "IDF", DepartmentCode: "75", City: "Paris", Lat: &lat2, Lon: &lon2},
		{ID: "gym_fp_partdieu", ChainID: "chain_fitnesspark", Name: "Fitness Park Part-Dieu", RegionCode: "ARA", DepartmentCode: "69", City: "Lyon", Lat: &lat3, Lon: &lon3},
	}
	chains := []Chain{{ID: "chain_basicfit", Name: "Basic-Fit"}, {ID: "chain_fitnesspark", Name: "Fitness Park"}}
	if err := db.Create(&chains).Error; err != nil {
		return err
	}
	if err := db.Create(&facilities).Error; err != nil {
		return err
	}

	var day, night availability.Mask
	for d := 0; d < availability.Days; d++ {
		for s := 16; s < 40; s++ {
			day.Set(d, s)
		}
		night.Set(d, 2)
	}
	one, three := 1, 3
	users := []User{
		{ID: "u1", Name: "user1", Email: "u1@test.com", PasswordHash: "x", Level: &one, AvailabilityMask: availability.Encode(day), RegionCode: "IDF", DepartmentCode: "75", City: "Paris",
			Favorites: []UserFavorite{{UserID: "u1", FacilityID: "gym_bf_bastille", Position: 0}}},
		{ID: "u2", Name: "user2", Email: "u2@test.com", PasswordHash: "x", Level: &one, AvailabilityMask: availability.Encode(day), RegionCode: "IDF", DepartmentCode: "75", City: "Paris",
			Favorites: []UserFavorite{{UserID: "u2", FacilityID: "gym_bf_bastille", Position: 0}, {UserID: "u2", FacilityID: "gym_bf_montparnasse", Position: 1}}},
		{ID: "u3", Name: "user3", Email: "u3@test.com", PasswordHash: "x", Level: &three, AvailabilityMask: availability.Encode(night), RegionCode: "ARA", DepartmentCode: "69", City: "Lyon",
			Favorites: []UserFavorite{{UserID: "u3", FacilityID: "gym_fp_partdieu", Position: 0}}},
	}
	return db.Create(&users).Error
}
