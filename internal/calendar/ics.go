// Package calendar renders session invites as iCalendar (RFC 5545) payloads.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/oggyb/gym-buddy/internal/domain"
	"github.com/oggyb/gym-buddy/internal/schedule"
)

const (
	prodID    = "-//GoGymTogether Proto//FR"
	uidDomain = "gogymtogether"
	crlf      = "\r\n"

	// ContentType is the MIME type of a rendered payload.
	ContentType = "text/calendar;charset=utf-8"
	// FileName is the suggested download name.
	FileName = "seance.ics"
)

// Event is a single calendar entry.
type Event struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// Render returns the VCALENDAR payload for ev. now stamps DTSTAMP and seeds
// the UID. Field order inside VEVENT is fixed so exports stay byte-compatible.
func Render(ev Event, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:sess-%d@%s", now.UnixMilli(), uidDomain),
		"DTSTAMP:" + formatDate(now),
		"DTSTART:" + formatDate(ev.Start),
		"DTEND:" + formatDate(ev.End),
		"SUMMARY:" + ev.Title,
		"DESCRIPTION:" + ev.Description,
		"LOCATION:" + ev.Location,
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, crlf)
}

// ForSession builds the event for a proposed session at facility with partnerName.
func ForSession(slot schedule.Slot, facility domain.Facility, partnerName string) Event {
	return Event{
		Title:       "Séance à " + facility.Name,
		Description: "Séance proposée avec " + partnerName,
		Location:    facility.Name + ", " + facility.City,
		Start:       slot.Start,
		End:         slot.End(),
	}
}

// formatDate renders t in UTC basic format, e.g. 20261014T080000Z.
func formatDate(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}
