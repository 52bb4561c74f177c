package calendar

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"munsite/internal/dates"
	"munsite/internal/meeting"
	"munsite/internal/model"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

const (
	ProductID       = "-//munsite//meetings//EN"
	DefaultDuration = time.Hour
)

// ErrEmpty is returned by Write when no meeting has a usable start.
var ErrEmpty = errors.New("calendar: no meetings to export")

// uidSpace namespaces meeting UIDs so the same meeting keeps its UID across exports.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("munsite:meetings"))

var durationPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes)$`)

// ParseDuration reads free-form durations like "90 min", "1h" or "2 hours".
// Anything it can't read falls back to DefaultDuration.
func ParseDuration(s string) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultDuration
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}

	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return DefaultDuration
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil || n <= 0 {
		return DefaultDuration
	}
	unit := time.Minute
	if strings.HasPrefix(strings.ToLower(m[2]), "h") {
		unit = time.Hour
	}
	return time.Duration(n * float64(unit))
}

// UID is stable for a given date, time and room.
func UID(m model.Meeting) string {
	key := strings.Join([]string{dates.USDateToISO(m.Date), m.Time, m.Room}, "|")
	return uuid.NewSHA1(uidSpace, []byte(key)).String()
}

// Build turns meetings into a calendar. Meetings without a valid start are
// skipped; cancelled ones are kept with STATUS:CANCELLED.
func Build(meetings []model.Meeting, policy meeting.Policy, loc *time.Location, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")

	for _, m := range meetings {
		start := meeting.StartsAt(m, loc)
		if !start.Valid() {
			slog.Debug("skipping meeting without valid start", "date", m.Date, "time", m.Time)
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, UID(m))
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		event.Props.SetDateTime(ical.PropDateTimeStart, start.Time().UTC())
		event.Props.SetDateTime(ical.PropDateTimeEnd, start.Time().Add(ParseDuration(m.Duration)).UTC())

		summary := m.Type
		if summary == "" {
			summary = "Meeting"
		}
		event.Props.SetText(ical.PropSummary, summary)
		if m.Room != "" {
			event.Props.SetText(ical.PropLocation, m.Room)
		}

		status := "CONFIRMED"
		if policy.IsCancelled(m) {
			status = "CANCELLED"
		}
		event.Props.SetText(ical.PropStatus, status)

		cal.Children = append(cal.Children, event.Component)
	}
	return cal
}

// Write encodes meetings as an iCalendar document.
func Write(w io.Writer, meetings []model.Meeting, policy meeting.Policy, loc *time.Location, stamp time.Time) error {
	cal := Build(meetings, policy, loc, stamp)
	if len(cal.Children) == 0 {
		return ErrEmpty
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}
