// Package availability encodes weekly half-hour availability schedules.
//
// A week is 7 days × 48 half-hour slots. Day 0 is Monday and slot 0 covers
// 00:00–00:30. Bit i of the mask lives in byte i/8 at bit position i%8; the
// packed bytes travel on user profiles as standard base64 text.
package availability

import (
	"encoding/base64"
	"fmt"
)

const (
	Days        = 7
	SlotsPerDay = 48
	Size        = Days * SlotsPerDay
	// PackedLen is the number of bytes a packed mask occupies.
	PackedLen = (Size + 7) / 8
)

// Mask is a decoded weekly availability schedule.
type Mask [Size]bool

// DecodeError reports a blob that cannot be turned into a mask.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("availability: decode: %s: %v", e.Reason, e.Err)
	}
	return "availability: decode: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Index returns the flat bit index for a weekday and slot.
func Index(weekday, slot int) int {
	return weekday*SlotsPerDay + slot
}

// Full returns a mask with every slot set.
func Full() Mask {
	var m Mask
	for i := range m {
		m[i] = true
	}
	return m
}

// Set marks weekday/slot as free. Out-of-range coordinates are ignored.
func (m *Mask) Set(weekday, slot int) {
	if weekday < 0 || weekday >= Days || slot < 0 || slot >= SlotsPerDay {
		return
	}
	m[Index(weekday, slot)] = true
}

// Get reports whether weekday/slot is free.
func (m Mask) Get(weekday, slot int) bool {
	if weekday < 0 || weekday >= Days || slot < 0 || slot >= SlotsPerDay {
		return false
	}
	return m[Index(weekday, slot)]
}

// Count returns the number of free slots.
func (m Mask) Count() int {
	n := 0
	for _, b := range m {
		if b {
			n++
		}
	}
	return n
}

// HasAnyOn reports whether at least one slot is free on weekday.
func (m Mask) HasAnyOn(weekday int) bool {
	if weekday < 0 || weekday >= Days {
		return false
	}
	for slot := 0; slot < SlotsPerDay; slot++ {
		if m[Index(weekday, slot)] {
			return true
		}
	}
	return false
}

// Encode packs the mask into bytes and returns its base64 text form.
func Encode(m Mask) string {
	buf := make([]byte, PackedLen)
	for i, b := range m {
		if b {
			buf[i/8] |= 1 << (i % 8)
		}
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// Decode is the inverse of Encode.
//
// Missing trailing bytes are zero-filled, so a short blob yields a mask with
// the tail unavailable. A blob that is not base64 or that carries more bytes
// than a mask holds is rejected with a *DecodeError. Unpadded base64 is
// accepted.
func Decode(blob string) (Mask, error) {
	var m Mask
	if blob == "" {
		return m, nil
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		// Some clients strip the padding.
		var rawErr error
		if raw, rawErr = base64.RawStdEncoding.DecodeString(blob); rawErr != nil {
			return m, &DecodeError{Reason: "invalid base64", Err: err}
		}
	}
	if len(raw) > PackedLen {
		return m, &DecodeError{Reason: fmt.Sprintf("got %d bytes, want at most %d", len(raw), PackedLen)}
	}

	for i := range m {
		byteIdx := i / 8
		if byteIdx >= len(raw) {
			break
		}
		m[i] = (raw[byteIdx]>>(i%8))&1 == 1
	}
	return m, nil
}

// DecodeOrEmpty decodes blob and falls back to the all-unavailable mask on error.
func DecodeOrEmpty(blob string) Mask {
	m, err := Decode(blob)
	if err != nil {
		return Mask{}
	}
	return m
}

// Similarity is the Jaccard index of the two free-slot sets.
// It is 0 when neither mask has a free slot.
func Similarity(a, b Mask) float64 {
	inter, union := 0, 0
	for i := 0; i < Size; i++ {
		if a[i] && b[i] {
			inter++
		}
		if a[i] || b[i] {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
