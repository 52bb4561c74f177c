package calendar

import (
	"bytes"
	"errors"
	"munsite/internal/meeting"
	"munsite/internal/model"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/go-playground/assert/v2"
)

var stamp = time.Date(2050, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", time.Hour},
		{"90 min", 90 * time.Minute},
		{"45 minutes", 45 * time.Minute},
		{"1h", time.Hour},
		{"1.5 hours", 90 * time.Minute},
		{"2 Hours", 2 * time.Hour},
		{"1h30m", 90 * time.Minute},
		{"all afternoon", time.Hour},
		{"0 min", time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.in))
		})
	}
}

func TestUID_Stable(t *testing.T) {
	a := model.Meeting{Date: "3/4/2050", Time: "15:00", Room: "Library"}
	b := model.Meeting{Date: "2050-03-04", Time: "15:00", Room: "Library", Type: "GA"}
	c := model.Meeting{Date: "2050-03-04", Time: "15:00", Room: "Gym"}

	assert.Equal(t, UID(a), UID(b))
	assert.NotEqual(t, UID(a), UID(c))
}

func TestWrite(t *testing.T) {
	meetings := []model.Meeting{
		{Date: "3/4/2050", Time: "15:00", Duration: "90 min", Type: "General Assembly", Room: "Library"},
		{Date: "2050-03-11", Room: "Gym"},
		{Date: "someday"},
	}
	policy := meeting.NewPolicy(model.SiteConfig{CancelDates: []string{"3/11/2050"}})

	var buf bytes.Buffer
	err := Write(&buf, meetings, policy, time.UTC, stamp)
	assert.Equal(t, nil, err)

	cal, err := ical.NewDecoder(&buf).Decode()
	assert.Equal(t, nil, err)

	events := cal.Events()
	assert.Equal(t, 2, len(events))

	first := events[0]
	summary, _ := first.Props.Text(ical.PropSummary)
	location, _ := first.Props.Text(ical.PropLocation)
	status, _ := first.Props.Text(ical.PropStatus)
	uid, _ := first.Props.Text(ical.PropUID)
	start, err := first.DateTimeStart(time.UTC)
	assert.Equal(t, nil, err)
	end, err := first.DateTimeEnd(time.UTC)
	assert.Equal(t, nil, err)

	assert.Equal(t, "General Assembly", summary)
	assert.Equal(t, "Library", location)
	assert.Equal(t, "CONFIRMED", status)
	assert.Equal(t, UID(meetings[0]), uid)
	assert.Equal(t, time.Date(2050, time.March, 4, 15, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 90*time.Minute, end.Sub(start))

	second := events[1]
	summary, _ = second.Props.Text(ical.PropSummary)
	status, _ = second.Props.Text(ical.PropStatus)
	start, _ = second.DateTimeStart(time.UTC)

	assert.Equal(t, "Meeting", summary)
	assert.Equal(t, "CANCELLED", status)
	assert.Equal(t, time.Date(2050, time.March, 11, 12, 30, 0, 0, time.UTC), start)
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, []model.Meeting{{Date: "never"}}, meeting.Policy{}, time.UTC, stamp)

	assert.Equal(t, true, errors.Is(err, ErrEmpty))
	assert.Equal(t, 0, buf.Len())
}
