// Package ics renders iCalendar invite files for confirmed meetings.
package ics

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/timbercreek/coffee-connect/pkg/db"
)

// ProdID identifies the calendar generator in emitted files.
const ProdID = "-//Timbercreek Men's Connect//NONSGML v1.0//EN"

const stampLayout = "20060102T150405"

// Generate renders a VCALENDAR invite for a confirmed meeting. DTSTART and
// DTEND are emitted in floating local time; DTSTAMP is UTC. The property
// order is fixed so downstream consumers can diff generated files.
func Generate(meeting *db.Meeting, location *db.Location, host, attendee *db.User, now time.Time) string {
	start := meeting.StartTime.Format(stampLayout)
	end := meeting.StartTime.Add(time.Duration(meeting.DurationMinutes) * time.Minute).Format(stampLayout)
	mapsLink := "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(location.Address)

	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+ProdID)
	writeLine(&b, "BEGIN:VEVENT")
	writeLine(&b, "UID:"+meeting.ID)
	writeLine(&b, "DTSTAMP:"+now.UTC().Format(stampLayout)+"Z")
	writeLine(&b, "DTSTART:"+start)
	writeLine(&b, "DTEND:"+end)
	writeLine(&b, "SUMMARY:"+escapeText(fmt.Sprintf("Coffee Connect with %s", attendee.Name)))
	writeLine(&b, "DESCRIPTION:"+escapeText(fmt.Sprintf("Location: %s, %s\nView on Google Maps: %s", location.Name, location.Address, mapsLink)))
	writeLine(&b, "LOCATION:"+escapeText(fmt.Sprintf("%s, %s", location.Name, location.Address)))
	writeLine(&b, "END:VEVENT")
	b.WriteString("END:VCALENDAR")
	return b.String()
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(foldLine(line))
	b.WriteString("\r\n")
}

// escapeText applies RFC 5545 TEXT escaping to property values.
func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}

// foldLine folds content lines longer than 75 octets per RFC 5545 §3.1.
// Folds must land between characters, so the cut backs up to the nearest
// rune boundary instead of slicing mid-sequence.
func foldLine(line string) string {
	const limit = 75
	if len(line) <= limit {
		return line
	}

	var b strings.Builder
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
	}
	b.WriteString(line)
	return b.String()
}
