package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultTime is used when a meeting has no time of day.
const DefaultTime = "12:30"

// DisplayLayout renders a meeting start for humans.
const DisplayLayout = "Monday, January 2, 03:04 PM"

var (
	isoPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	usPattern  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

var clockLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// USDateToISO converts M/D/YYYY to YYYY-MM-DD. Strings that already hold an
// ISO date, or that match neither form, are returned unchanged.
func USDateToISO(s string) string {
	if s == "" {
		return ""
	}
	if isoPattern.MatchString(s) {
		return s
	}
	m := usPattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
}

// DateTime is a point in time that may be invalid. Invalid values are never
// at or after anything.
type DateTime struct {
	t     time.Time
	valid bool
}

func Of(t time.Time) DateTime {
	return DateTime{t: t, valid: true}
}

// BuildDateTime joins a date and a clock time, defaulting the time to 12:30.
func BuildDateTime(date, clock string, loc *time.Location) DateTime {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = DefaultTime
	}
	if loc == nil {
		loc = time.Local
	}

	value := USDateToISO(date) + "T" + clock
	for _, layout := range clockLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return DateTime{t: t, valid: true}
		}
	}
	return DateTime{}
}

func (d DateTime) Valid() bool {
	return d.valid
}

func (d DateTime) Time() time.Time {
	return d.t
}

// AtOrAfter reports whether d >= other. False when either is invalid.
func (d DateTime) AtOrAfter(other DateTime) bool {
	if !d.valid || !other.valid {
		return false
	}
	return !d.t.Before(other.t)
}

// Less orders valid values chronologically and places invalid values last.
func (d DateTime) Less(other DateTime) bool {
	switch {
	case d.valid && other.valid:
		return d.t.Before(other.t)
	case d.valid:
		return true
	default:
		return false
	}
}

func (d DateTime) Format() string {
	if !d.valid {
		return "Invalid Date"
	}
	return d.t.Format(DisplayLayout)
}
