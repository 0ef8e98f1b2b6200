package buddy

import (
	"encoding/json"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oggyb/gym-buddy/internal/domain"
	svcErr "github.com/oggyb/gym-buddy/internal/errors"
	"github.com/oggyb/gym-buddy/internal/lifecycle"
	"github.com/oggyb/gym-buddy/internal/recommend"
	"github.com/oggyb/gym-buddy/internal/schedule"
	"github.com/oggyb/gym-buddy/internal/validation"
)

// decode fills dst (a pointer to a tagged request struct) from in and validates it.
func decode(in *structpb.Struct, dst any) error {
	if in == nil {
		in = &structpb.Struct{}
	}
	b, err := protojson.Marshal(in)
	if err != nil {
		return svcErr.InvalidArgument("malformed request: " + err.Error())
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return svcErr.InvalidArgument("malformed request: " + err.Error())
	}
	if err := validation.ValidateStruct(dst); err != nil {
		return svcErr.Map(err)
	}
	return nil
}

// encode builds a response struct; values must be structpb-compatible.
func encode(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return out, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func parseStart(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, svcErr.InvalidArgument("start must be an RFC 3339 timestamp")
	}
	return t, nil
}

func stringList(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

func candidateFields(sc recommend.Scored) map[string]any {
	u := sc.User
	m := map[string]any{
		"user_id":            u.ID,
		"name":               u.Name,
		"photo_url":          u.PhotoURL,
		"bio":                u.Bio,
		"goal":               u.Goal,
		"city":               u.City,
		"favorites":          stringList(u.Favorites),
		"score":              sc.Score,
		"availability_score": sc.Availability,
		"proximity_score":    sc.Proximity,
		"level_score":        sc.Level,
	}
	if u.Level != nil {
		m["level"] = *u.Level
	}
	return m
}

func profileFields(u domain.User) map[string]any {
	m := map[string]any{
		"user_id":           u.ID,
		"name":              u.Name,
		"photo_url":         u.PhotoURL,
		"bio":               u.Bio,
		"birth_date":        u.BirthDate,
		"goal":              u.Goal,
		"availability_mask": u.AvailabilityMask,
		"region_code":       u.RegionCode,
		"department_code":   u.DepartmentCode,
		"city":              u.City,
		"favorites":         stringList(u.Favorites),
	}
	if u.Level != nil {
		m["level"] = *u.Level
	}
	return m
}

func candidateList(items []recommend.Scored) []any {
	out := make([]any, len(items))
	for i, sc := range items {
		out[i] = candidateFields(sc)
	}
	return out
}

func messageFields(msg domain.Message) map[string]any {
	reactions := make(map[string]any, len(msg.Reactions))
	for sym, n := range msg.Reactions {
		reactions[sym] = n
	}
	return map[string]any{
		"message_id": msg.ID,
		"thread_id":  msg.ThreadID,
		"sender_id":  msg.SenderID,
		"text":       msg.Text,
		"type":       string(msg.Type),
		"created_at": formatTime(msg.CreatedAt),
		"reactions":  reactions,
	}
}

func messageList(msgs []domain.Message) []any {
	out := make([]any, len(msgs))
	for i, m := range msgs {
		out[i] = messageFields(m)
	}
	return out
}

func slotFields(slot schedule.Slot, facilityName string) map[string]any {
	return map[string]any{
		"facility_id":   slot.FacilityID,
		"facility_name": facilityName,
		"start":         formatTime(slot.Start),
		"end":           formatTime(slot.End()),
		"label":         lifecycle.FormatSlot(slot.Start),
	}
}
