package db

import (
	"sort"
	"time"

	"github.com/oggyb/gym-buddy/internal/domain"
)

// User table. Favorites live in user_favorites, ordered by Position.
type User struct {
	ID               string `gorm:"primaryKey;size:64"`
	Name             string `gorm:"size:128;not null"`
	Email            string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash     string `gorm:"size:255;not null"`
	PhotoURL         string `gorm:"size:512"`
	Bio              string `gorm:"size:1024"`
	BirthDate        string `gorm:"size:10"`
	Level            *int
	Goal             string `gorm:"size:64"`
	AvailabilityMask string `gorm:"size:64"`
	RegionCode       string `gorm:"size:16;index"`
	DepartmentCode   string `gorm:"size:16;index"`
	City             string `gorm:"size:128"`
	Active           bool   `gorm:"default:true"`
	LastLoginAt      time.Time
	Favorites        []UserFavorite `gorm:"foreignKey:UserID"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
}

// UserFavorite links a user to a favorite facility.
type UserFavorite struct {
	UserID     string `gorm:"primaryKey;size:64"`
	FacilityID string `gorm:"primaryKey;size:64"`
	Position   int    `gorm:"not null"`
}

// Chain table (facility brands).
type Chain struct {
	ID   string `gorm:"primaryKey;size:64"`
	Name string `gorm:"size:128;not null"`
}

// Facility table. Lat/Lon are nullable.
type Facility struct {
	ID             string `gorm:"primaryKey;size:64"`
	ChainID        string `gorm:"size:64;index"`
	Name           string `gorm:"size:128;not null"`
	RegionCode     string `gorm:"size:16"`
	DepartmentCode string `gorm:"size:16"`
	City           string `gorm:"size:128"`
	Lat            *float64
	Lon            *float64
}

// Decision is one swipe. The table is an append-only log: unlike a
// one-row-per-pair design, repeated swipes on the same target each get a row.
//
// Indexes:
//   - idx_swiper_created(swiper_id, created_at)
//     Loads a user's swipe history for recommendation exclusion.
//   - idx_target_value(target_id, value)
//     Counts likes received.
type Decision struct {
	ID        string    `gorm:"primaryKey;size:64"`
	SwiperID  string    `gorm:"size:64;not null;index:idx_swiper_created,priority:1"`
	TargetID  string    `gorm:"size:64;not null;index:idx_target_value,priority:1"`
	Value     string    `gorm:"size:8;not null;index:idx_target_value,priority:2"`
	CreatedAt time.Time `gorm:"not null;index:idx_swiper_created,priority:2"`
}

// Match between two users. PairKey is the sorted "a|b" pair used to look up
// the match of an unordered pair.
type Match struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserA     string    `gorm:"size:64;not null;index"`
	UserB     string    `gorm:"size:64;not null;index"`
	PairKey   string    `gorm:"size:130;not null;index:idx_pair_active,priority:1"`
	Active    bool      `gorm:"not null;index:idx_pair_active,priority:2"`
	CreatedAt time.Time `gorm:"not null"`
}

// ChatThread is 1:1 with a match.
type ChatThread struct {
	ID        string    `gorm:"primaryKey;size:64"`
	MatchID   string    `gorm:"size:64;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
}

// Message in a thread. Position is the append index inside the thread.
type Message struct {
	ID        string    `gorm:"primaryKey;size:64"`
	ThreadID  string    `gorm:"size:64;not null;uniqueIndex:idx_thread_position,priority:1"`
	Position  int       `gorm:"not null;uniqueIndex:idx_thread_position,priority:2"`
	SenderID  string    `gorm:"size:64;not null"`
	Text      string    `gorm:"type:text;not null"`
	Type      string    `gorm:"size:16;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// MessageReaction counts one reaction symbol on a message.
type MessageReaction struct {
	MessageID string `gorm:"primaryKey;size:64"`
	Symbol    string `gorm:"primaryKey;size:32"`
	Count     int    `gorm:"not null;default:0"`
}

// AllModels lists every table for migrations.
func AllModels() []any {
	return []any{&User{}, &UserFavorite{}, &Chain{}, &Facility{}, &Decision{}, &Match{}, &ChatThread{}, &Message{}, &MessageReaction{}}
}

// PairKey orders two user ids so that (a,b) and (b,a) share a key.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// ToDomain converts a user row; favorites must be preloaded.
func (u User) ToDomain() domain.User {
	favs := make([]string, len(u.Favorites))
	sortFavorites(u.Favorites)
	for i, f := range u.Favorites {
		favs[i] = f.FacilityID
	}
	return domain.User{
		ID:               u.ID,
		Name:             u.Name,
		PhotoURL:         u.PhotoURL,
		Bio:              u.Bio,
		BirthDate:        u.BirthDate,
		Level:            u.Level,
		Goal:             u.Goal,
		Favorites:        favs,
		AvailabilityMask: u.AvailabilityMask,
		Location: domain.Location{
			RegionCode:     u.RegionCode,
			DepartmentCode: u.DepartmentCode,
			City:           u.City,
		},
	}
}

func sortFavorites(favs []UserFavorite) {
	sort.SliceStable(favs, func(i, j int) bool { return favs[i].Position < favs[j].Position })
}

func (c Chain) ToDomain() domain.Chain {
	return domain.Chain{ID: c.ID, Name: c.Name}
}

func (f Facility) ToDomain() domain.Facility {
	return domain.Facility{
		ID:             f.ID,
		ChainID:        f.ChainID,
		Name:           f.Name,
		RegionCode:     f.RegionCode,
		DepartmentCode: f.DepartmentCode,
		City:           f.City,
		Lat:            f.Lat,
		Lon:            f.Lon,
	}
}

func (d Decision) ToDomain() domain.Decision {
	return domain.Decision{
		ID:        d.ID,
		SwiperID:  d.SwiperID,
		TargetID:  d.TargetID,
		Value:     domain.DecisionValue(d.Value),
		CreatedAt: d.CreatedAt,
	}
}

func DecisionFromDomain(d domain.Decision) Decision {
	return Decision{ID: d.ID, SwiperID: d.SwiperID, TargetID: d.TargetID, Value: string(d.Value), CreatedAt: d.CreatedAt}
}

func (m Match) ToDomain() domain.Match {
	return domain.Match{ID: m.ID, UserA: m.UserA, UserB: m.UserB, CreatedAt: m.CreatedAt, Active: m.Active}
}

func MatchFromDomain(m domain.Match) Match {
	return Match{ID: m.ID, UserA: m.UserA, UserB: m.UserB, PairKey: PairKey(m.UserA, m.UserB), Active: m.Active, CreatedAt: m.CreatedAt}
}

func (m Message) ToDomain(reactions map[string]int) domain.Message {
	if reactions == nil {
		reactions = map[string]int{}
	}
	return domain.Message{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		Type:      domain.MessageType(m.Type),
		CreatedAt: m.CreatedAt,
		Reactions: reactions,
	}
}
