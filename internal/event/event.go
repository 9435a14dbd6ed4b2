package event

import (
	"fmt"
	"strings"
	"unicode"
)

// NoTicketURL is the sentinel value meaning no ticket link is available.
const NoTicketURL = "#"

// Source names recorded in Event provenance.
const (
	SourceTicketmaster = "Ticketmaster"
	SourceWebExtract   = "Web Scrape/LLM"
)

// Event represents one discovered tour date. Events are created fresh during
// a check, are immutable after normalization, and are never persisted.
type Event struct {
	Artist    string `json:"artist"`
	Location  string `json:"location"` // display location: "City" or "City, ST"
	Venue     string `json:"venue"`
	Date      string `json:"date"` // display form; may vary by source
	TicketURL string `json:"ticket_url"`
	Source    string `json:"source"`     // which adapter produced it
	SourceURL string `json:"source_url"` // API record URL or scraped page URL
}

// Key returns the identity used to detect the same show reported by
// different sources: artist, venue and location are compared
// case-insensitively, dates are compared in normalized form.
func (e Event) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s",
		strings.ToLower(e.Artist),
		strings.ToLower(e.Venue),
		NormalizeDate(e.Date),
		strings.ToLower(e.Location),
	)
}

// Dedup removes events sharing a Key, keeping the first occurrence. The
// returned slice preserves input order, so running Dedup on an already
// deduplicated list is a no-op.
func Dedup(events []Event) []Event {
	seen := make(map[string]bool, len(events))
	unique := make([]Event, 0, len(events))
	for _, evt := range events {
		key := evt.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, evt)
	}
	return unique
}

// IsRegionCode reports whether a location string should be treated as a
// 2-letter state/province code rather than a place name.
func IsRegionCode(location string) bool {
	if len(location) != 2 {
		return false
	}
	for _, r := range location {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// SplitList splits a comma-separated field (locations, URLs) into trimmed,
// non-empty entries.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
