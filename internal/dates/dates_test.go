package dates

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestUSDateToISO(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single digits", input: "3/4/2025", want: "2025-03-04"},
		{name: "double digits", input: "12/25/2025", want: "2025-12-25"},
		{name: "already iso", input: "2025-03-04", want: "2025-03-04"},
		{name: "iso inside text", input: "on 2025-03-04 maybe", want: "on 2025-03-04 maybe"},
		{name: "empty", input: "", want: ""},
		{name: "unrecognised", input: "next tuesday", want: "next tuesday"},
		{name: "two digit year", input: "3/4/25", want: "3/4/25"},
		{name: "padded with spaces", input: " 3/4/2025", want: " 3/4/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, USDateToISO(tt.input))
		})
	}
}

func TestBuildDateTime(t *testing.T) {
	d := BuildDateTime("3/4/2025", "10:15", time.UTC)

	assert.Equal(t, true, d.Valid())
	assert.Equal(t, time.Date(2025, time.March, 4, 10, 15, 0, 0, time.UTC), d.Time())
}

func TestBuildDateTime_DefaultTime(t *testing.T) {
	for _, clock := range []string{"", "   "} {
		d := BuildDateTime("2025-03-04", clock, time.UTC)
		assert.Equal(t, true, d.Valid())
		assert.Equal(t, 12, d.Time().Hour())
		assert.Equal(t, 30, d.Time().Minute())
	}
}

func TestBuildDateTime_Seconds(t *testing.T) {
	d := BuildDateTime("2025-03-04", "09:05:30", time.UTC)

	assert.Equal(t, true, d.Valid())
	assert.Equal(t, 30, d.Time().Second())
}

func TestBuildDateTime_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		clock string
	}{
		{name: "empty date", date: "", clock: "10:00"},
		{name: "garbage date", date: "soon", clock: "10:00"},
		{name: "garbage time", date: "3/4/2025", clock: "noon"},
		{name: "impossible day", date: "2/30/2025", clock: "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := BuildDateTime(tt.date, tt.clock, time.UTC)
			assert.Equal(t, false, d.Valid())
			assert.Equal(t, "Invalid Date", d.Format())
		})
	}
}

func TestDateTime_Comparisons(t *testing.T) {
	early := BuildDateTime("1/1/2020", "10:00", time.UTC)
	late := BuildDateTime("1/1/2099", "10:00", time.UTC)
	invalid := BuildDateTime("nope", "", time.UTC)

	assert.Equal(t, true, late.AtOrAfter(early))
	assert.Equal(t, true, late.AtOrAfter(late))
	assert.Equal(t, false, early.AtOrAfter(late))
	assert.Equal(t, false, invalid.AtOrAfter(early))
	assert.Equal(t, false, late.AtOrAfter(invalid))

	assert.Equal(t, true, early.Less(late))
	assert.Equal(t, true, late.Less(invalid))
	assert.Equal(t, false, invalid.Less(early))
	assert.Equal(t, false, invalid.Less(invalid))
}

func TestDateTime_Format(t *testing.T) {
	d := BuildDateTime("3/4/2025", "14:05", time.UTC)
	assert.Equal(t, "Tuesday, March 4, 02:05 PM", d.Format())
}
