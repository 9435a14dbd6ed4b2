package notify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tourwatch/tourwatch/internal/event"
	"github.com/tourwatch/tourwatch/internal/pipeline"
)

// FormatSuccess renders one entity's newly found dates as a notification
// message: sources first, then events grouped by location, locations sorted
// alphabetically and dates sorted within each group.
func FormatSuccess(entityName string, events []event.Event) string {
	var msg strings.Builder

	fmt.Fprintf(&msg, "🎵 <b>New tour dates found for %s!</b>\n\n", entityName)

	if sources := sourceLines(events); len(sources) > 0 {
		msg.WriteString("🔍 <b>Source(s):</b>\n")
		for _, line := range sources {
			msg.WriteString(line)
		}
		msg.WriteString("\n")
	}

	byLocation := make(map[string][]event.Event)
	for _, evt := range events {
		byLocation[evt.Location] = append(byLocation[evt.Location], evt)
	}

	locations := make([]string, 0, len(byLocation))
	for location := range byLocation {
		locations = append(locations, location)
	}
	sort.Strings(locations)

	for _, location := range locations {
		fmt.Fprintf(&msg, "📍 <b>%s</b>\n", location)

		group := byLocation[location]
		sort.SliceStable(group, func(i, j int) bool {
			return event.NormalizeDate(group[i].Date) < event.NormalizeDate(group[j].Date)
		})

		for _, evt := range group {
			fmt.Fprintf(&msg, "  • %s\n    📅 %s\n", evt.Venue, evt.Date)
			if evt.TicketURL != event.NoTicketURL {
				fmt.Fprintf(&msg, "    🎟 <a href=\"%s\">Get Tickets</a>\n", evt.TicketURL)
			}
			msg.WriteString("\n")
		}
	}

	return msg.String()
}

// sourceLines lists the distinct source URLs behind a result set.
func sourceLines(events []event.Event) []string {
	sourceByURL := make(map[string]string)
	for _, evt := range events {
		if evt.SourceURL == "" {
			continue
		}
		if _, seen := sourceByURL[evt.SourceURL]; !seen {
			sourceByURL[evt.SourceURL] = evt.Source
		}
	}

	urls := make([]string, 0, len(sourceByURL))
	for u := range sourceByURL {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	lines := make([]string, 0, len(urls))
	for _, u := range urls {
		source := sourceByURL[u]
		label := u
		if source == event.SourceTicketmaster {
			label = "Ticketmaster Event Page"
		}
		lines = append(lines, fmt.Sprintf("• <a href='%s'>%s</a> (%s)\n", u, label, source))
	}
	return lines
}

// FormatFailures renders the list of source problems hit while checking one
// entity. Failures keep their collection order.
func FormatFailures(entityName string, failures []pipeline.SourceFailure) string {
	var msg strings.Builder

	fmt.Fprintf(&msg, "⚠️ <b>Problems checking sources for %s:</b>\n\n", entityName)
	for _, f := range failures {
		fmt.Fprintf(&msg, "• %s: %s\n", f.Source, f.Reason)
	}

	return msg.String()
}

// FormatEntityError renders the notification for an unexpected failure that
// aborted one entity's check.
func FormatEntityError(entityName, reason string) string {
	return fmt.Sprintf("❌ Failed to complete check for %s. Error: %s", entityName, reason)
}

// FormatBatchError renders the notification for a failure that ended a whole
// batch run.
func FormatBatchError(reason string) string {
	return fmt.Sprintf("❌ Failed to run scheduled check. Error: %s", reason)
}
