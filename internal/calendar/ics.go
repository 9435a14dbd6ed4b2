// Package calendar renders found tour dates as an iCalendar (.ics)
// document so they can be imported into any calendar application.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/tourwatch/tourwatch/internal/event"
)

const prodID = "-//tourwatch//tourwatch//EN"

// GenerateICS renders events as one VCALENDAR with a VEVENT per tour date.
// Shows are exported as all-day events; an event whose date cannot be
// reduced to YYYY-MM-DD is skipped rather than guessed at.
func GenerateICS(events []event.Event, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", prodID))
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	for _, evt := range events {
		day, err := time.Parse("2006-01-02", event.NormalizeDate(evt.Date))
		if err != nil {
			continue
		}
		writeEvent(&ics, evt, day, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, evt event.Event, day, now time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	// The dedup key already identifies one show uniquely, so it doubles
	// as a stable UID across repeated exports.
	ics.WriteString(fmt.Sprintf("UID:%s@tourwatch\r\n", uidHash(evt.Key())))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", now.UTC().Format("20060102T150405Z")))
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", day.Format("20060102")))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", day.AddDate(0, 0, 1).Format("20060102")))

	summary := fmt.Sprintf("%s - %s", evt.Artist, evt.Venue)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("%s at %s, %s", evt.Artist, evt.Venue, evt.Location)
	if evt.TicketURL != "" && evt.TicketURL != event.NoTicketURL {
		description += "\nTickets: " + evt.TicketURL
	}
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	location := evt.Venue
	if evt.Location != "" {
		location = fmt.Sprintf("%s, %s", evt.Venue, evt.Location)
	}
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(location)))

	if evt.TicketURL != "" && evt.TicketURL != event.NoTicketURL {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", evt.TicketURL))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// uidHash flattens a dedup key into UID-safe characters.
func uidHash(key string) string {
	replacer := strings.NewReplacer("|", "-", " ", "_", ",", "")
	return replacer.Replace(key)
}

// escapeICS escapes special characters according to RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
