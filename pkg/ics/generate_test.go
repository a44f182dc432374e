package ics

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timbercreek/coffee-connect/pkg/db"
)

func fixtureMeeting() (*db.Meeting, *db.Location, *db.User, *db.User) {
	meeting := &db.Meeting{
		ID:              "meeting-1234",
		HostUserID:      "user-1",
		AttendeeUserID:  "user-2",
		TimeslotID:      "slot-1",
		LocationID:      "loc-1",
		StartTime:       time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          db.MeetingConfirmed,
	}
	location := &db.Location{
		ID:      "loc-1",
		Name:    "Loyal Coffee",
		Address: "11550 Ridgeline Dr #102, Colorado Springs, CO 80921",
	}
	host := &db.User{ID: "user-1", Name: "John Doe"}
	attendee := &db.User{ID: "user-2", Name: "Jane Smith"}
	return meeting, location, host, attendee
}

func TestGenerateFieldLayout(t *testing.T) {
	meeting, location, host, attendee := fixtureMeeting()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	content := Generate(meeting, location, host, attendee, now)

	lines := strings.Split(content, "\r\n")
	require.Equal(t, "BEGIN:VCALENDAR", lines[0])
	require.Equal(t, "VERSION:2.0", lines[1])
	require.Equal(t, "PRODID:"+ProdID, lines[2])
	require.Equal(t, "BEGIN:VEVENT", lines[3])
	assert.Equal(t, "UID:meeting-1234", lines[4])
	assert.Equal(t, "DTSTAMP:20260301T120000Z", lines[5])
	assert.Equal(t, "DTSTART:20260314T093000", lines[6])
	assert.Equal(t, "DTEND:20260314T103000", lines[7])
	assert.Equal(t, "SUMMARY:Coffee Connect with Jane Smith", lines[8])
	assert.Equal(t, "END:VCALENDAR", lines[len(lines)-1])
}

func TestGenerateDurationSetsDtEnd(t *testing.T) {
	meeting, location, host, attendee := fixtureMeeting()
	meeting.DurationMinutes = 30

	content := Generate(meeting, location, host, attendee, time.Now())

	assert.Contains(t, content, "DTEND:20260314T100000\r\n")
}

// The generated file must remain standard iCalendar, so parse it back with
// a real ICS parser and verify the event round-trips.
func TestGenerateParsesAsICalendar(t *testing.T) {
	meeting, location, host, attendee := fixtureMeeting()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	content := Generate(meeting, location, host, attendee, now)

	cal, err := ical.ParseCalendar(strings.NewReader(content))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, "meeting-1234", event.Id())

	summary := event.GetProperty(ical.ComponentPropertySummary)
	require.NotNil(t, summary)
	assert.Equal(t, "Coffee Connect with Jane Smith", summary.Value)

	loc := event.GetProperty(ical.ComponentPropertyLocation)
	require.NotNil(t, loc)
	assert.Contains(t, loc.Value, "Loyal Coffee")

	desc := event.GetProperty(ical.ComponentPropertyDescription)
	require.NotNil(t, desc)
	assert.Contains(t, desc.Value, "View on Google Maps")
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, `a\, b\; c\nd`, escapeText("a, b; c\nd"))
}

func TestFoldLongLines(t *testing.T) {
	meeting, location, host, attendee := fixtureMeeting()

	content := Generate(meeting, location, host, attendee, time.Now())

	for _, line := range strings.Split(content, "\r\n") {
		assert.LessOrEqual(t, len(line), 76, "line exceeds RFC 5545 fold limit: %q", line)
	}
}

func TestFoldNeverSplitsMultiByteCharacters(t *testing.T) {
	meeting, location, host, attendee := fixtureMeeting()
	location.Name = "Café Überhaupt"
	location.Address = strings.Repeat("é", 60) + " Müllerstraße 1, München, Deutschland " + strings.Repeat("ß", 40)

	content := Generate(meeting, location, host, attendee, time.Now())

	for _, line := range strings.Split(content, "\r\n") {
		assert.True(t, utf8.ValidString(line), "physical line is not valid UTF-8: %q", line)
		assert.LessOrEqual(t, len(line), 76, "line exceeds RFC 5545 fold limit: %q", line)
	}

	// Unfolding must reassemble the original characters
	cal, err := ical.ParseCalendar(strings.NewReader(content))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)

	loc := events[0].GetProperty(ical.ComponentPropertyLocation)
	require.NotNil(t, loc)
	assert.Contains(t, loc.Value, "Café Überhaupt")
	assert.Contains(t, loc.Value, "Müllerstraße")
}

func TestFoldLineRuneBoundaries(t *testing.T) {
	// 80 two-octet runes force folds that would land mid-rune at fixed offsets
	folded := foldLine(strings.Repeat("é", 80))

	for _, line := range strings.Split(folded, "\r\n") {
		assert.True(t, utf8.ValidString(line), "folded line is not valid UTF-8: %q", line)
		assert.LessOrEqual(t, len(line), 76)
	}
	assert.Equal(t, strings.Repeat("é", 80), strings.ReplaceAll(folded, "\r\n ", ""))
}
