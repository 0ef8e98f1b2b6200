package domain

import "time"

// DecisionValue is the outcome of a swipe.
type DecisionValue string

const (
	DecisionLike DecisionValue = "like"
	DecisionPass DecisionValue = "pass"
)

// Valid reports whether v is one of the known decision values.
func (v DecisionValue) Valid() bool {
	return v == DecisionLike || v == DecisionPass
}

// MessageType distinguishes plain chat text from session proposals.
type MessageType string

const (
	MessageText    MessageType = "text"
	MessageSession MessageType = "session"
)

// Location is a coarse home location made of region/department/city codes.
type Location struct {
	RegionCode     string
	DepartmentCode string
	City           string
}

// User is a profile as seen by the scoring engine.
//
// Level is optional; a nil level is treated as the middle tier (1).
// AvailabilityMask holds the serialized weekly mask (see package availability).
type User struct {
	ID               string
	Name             string
	PhotoURL         string
	Bio              string
	BirthDate        string
	Level            *int
	Goal             string
	Favorites        []string
	AvailabilityMask string
	Location
}

// ProfileUpdate carries the editable profile fields. Nil fields are left as
// they are; a non-nil Favorites replaces the whole ordered list.
type ProfileUpdate struct {
	Name             *string
	PhotoURL         *string
	Bio              *string
	BirthDate        *string
	Level            *int
	Goal             *string
	AvailabilityMask *string
	RegionCode       *string
	DepartmentCode   *string
	City             *string
	Favorites        *[]string
}

// Chain is a facility brand.
type Chain struct {
	ID   string
	Name string
}

// Facility is a bookable gym. Lat/Lon are optional.
type Facility struct {
	ID             string
	ChainID        string
	Name           string
	RegionCode     string
	DepartmentCode string
	City           string
	Lat            *float64
	Lon            *float64
}

// Decision is an immutable like/pass record from Swiper towards Target.
type Decision struct {
	ID        string
	SwiperID  string
	TargetID  string
	Value     DecisionValue
	CreatedAt time.Time
}

// Match pairs two users. Active=false means the match was archived.
type Match struct {
	ID        string
	UserA     string
	UserB     string
	CreatedAt time.Time
	Active    bool
}

// Involves reports whether userID is one side of the match.
func (m Match) Involves(userID string) bool {
	return m.UserA == userID || m.UserB == userID
}

// Partner returns the other side of the match for userID.
func (m Match) Partner(userID string) string {
	if m.UserA == userID {
		return m.UserB
	}
	return m.UserA
}

// ChatThread is the message log attached to exactly one match.
type ChatThread struct {
	ID        string
	MatchID   string
	CreatedAt time.Time
	Messages  []Message
}

// Message is a single entry of a chat thread. Reactions maps a symbol to its count.
type Message struct {
	ID        string
	ThreadID  string
	SenderID  string
	Text      string
	Type      MessageType
	CreatedAt time.Time
	Reactions map[string]int
}

// Snapshot is the read-only state handed to engine calls.
type Snapshot struct {
	CurrentUser User
	Users       []User
	Facilities  []Facility
	Chains      []Chain
}

// UserByID looks a user up in the snapshot, including the current user.
func (s Snapshot) UserByID(id string) (User, bool) {
	if s.CurrentUser.ID == id {
		return s.CurrentUser, true
	}
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FacilityByID looks a facility up in the snapshot.
func (s Snapshot) FacilityByID(id string) (Facility, bool) {
	for _, f := range s.Facilities {
		if f.ID == id {
			return f, true
		}
	}
	return Facility{}, false
}

// IntPtr is a small helper for optional ordinal fields.
func IntPtr(v int) *int { return &v }

// FloatPtr is a small helper for optional coordinates.
func FloatPtr(v float64) *float64 { return &v }

// DedupeIDs removes duplicate ids while keeping first-seen order.
func DedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
