package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/tourwatch/tourwatch/internal/event"
	"github.com/tourwatch/tourwatch/internal/store"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// entityView is the JSON shape for one tracked artist.
type entityView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Locations       []string `json:"locations"`
	URLs            []string `json:"urls,omitempty"`
	UseTicketmaster bool     `json:"use_ticketmaster"`
	UseWebScrape    bool     `json:"use_web_scrape"`
	OnHold          bool     `json:"on_hold"`
	Category        string   `json:"category"`
	LastChecked     string   `json:"last_checked,omitempty"`
}

// WriteEntities writes the artist list in the specified format.
func WriteEntities(w io.Writer, entities []store.Entity, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, entities)
	case FormatText:
		return writeText(w, entities)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, entities []store.Entity) error {
	views := make([]entityView, 0, len(entities))
	for _, e := range entities {
		v := entityView{
			ID:              e.ID,
			Name:            e.Name,
			Locations:       event.SplitList(e.Locations),
			URLs:            event.SplitList(e.URLs),
			UseTicketmaster: e.UseTicketmaster,
			UseWebScrape:    e.UseWebScrape,
			OnHold:          e.OnHold,
			Category:        e.Category,
		}
		if !e.LastChecked.IsZero() {
			v.LastChecked = e.LastChecked.UTC().Format(time.RFC3339)
		}
		views = append(views, v)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(views)
}

func writeText(w io.Writer, entities []store.Entity) error {
	if len(entities) == 0 {
		fmt.Fprintln(w, "No artists tracked.")
		return nil
	}

	for _, e := range entities {
		status := ""
		if e.OnHold {
			status = " [on hold]"
		}
		fmt.Fprintf(w, "%s%s\n", e.Name, status)
		fmt.Fprintf(w, "    Locations: %s\n", e.Locations)
		if e.URLs != "" {
			fmt.Fprintf(w, "    URLs: %s\n", e.URLs)
		}
		fmt.Fprintf(w, "    Sources: %s\n", sourceSummary(e))
		if e.LastChecked.IsZero() {
			fmt.Fprintln(w, "    Last checked: never")
		} else {
			fmt.Fprintf(w, "    Last checked: %s\n", e.LastChecked.UTC().Format("2006-01-02 15:04 MST"))
		}
	}
	fmt.Fprintf(w, "\nTotal: %d artists\n", len(entities))

	return nil
}

func sourceSummary(e store.Entity) string {
	switch {
	case e.UseTicketmaster && e.UseWebScrape:
		return "Ticketmaster, web extraction"
	case e.UseTicketmaster:
		return "Ticketmaster"
	case e.UseWebScrape:
		return "web extraction"
	default:
		return "none"
	}
}
