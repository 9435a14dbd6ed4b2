package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tourwatch/tourwatch/internal/event"
	"github.com/tourwatch/tourwatch/internal/extract"
	"github.com/tourwatch/tourwatch/internal/llm"
	"github.com/tourwatch/tourwatch/internal/pipeline"
)

// Scraper extracts tour dates from arbitrary web pages via a fetch step and
// a language-model step, each independently fallible.
type Scraper struct {
	fetcher   extract.Fetcher
	completer llm.Completer
	log       zerolog.Logger
}

// New creates a Scraper from a page fetcher and a model completer.
func New(fetcher extract.Fetcher, completer llm.Completer, log zerolog.Logger) *Scraper {
	return &Scraper{
		fetcher:   fetcher,
		completer: completer,
		log:       log.With().Str("adapter", "scraper").Logger(),
	}
}

// rawDate is one item of the model's JSON array. Optional keys get explicit
// defaults during validation so downstream code never re-checks presence.
type rawDate struct {
	City      string `json:"city"`
	Venue     string `json:"venue"`
	Date      string `json:"date"`
	TicketURL string `json:"ticket_url"`
}

// Extract fetches one URL and asks the model for tour dates. It returns the
// extracted events, or exactly one failure describing which step broke.
func (s *Scraper) Extract(ctx context.Context, pageURL, artistName string, locations []string) ([]event.Event, *pipeline.SourceFailure) {
	fetched := s.fetcher.Fetch(ctx, pageURL)
	if !fetched.Success {
		// Covers network errors, bad statuses and the fetched-but-empty
		// case; the fetcher's reason distinguishes them. The model is
		// not consulted without content.
		return nil, &pipeline.SourceFailure{Source: pageURL, Reason: fetched.Error}
	}

	prompt := buildPrompt(pageURL, artistName, locations, fetched.Content)

	s.log.Info().Str("artist", artistName).Str("url", pageURL).Msg("sending page to language model")

	response, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, &pipeline.SourceFailure{
			Source: pageURL,
			Reason: fmt.Sprintf("LLM processing failed: %v", err),
		}
	}

	cleaned := stripFences(response)

	var items []rawDate
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		s.log.Error().Str("url", pageURL).Str("response", cleaned).Msg("model response was not a JSON array")
		return nil, &pipeline.SourceFailure{
			Source: pageURL,
			Reason: "model response was not a valid JSON array",
		}
	}

	events := make([]event.Event, 0, len(items))
	for _, item := range items {
		if item.City == "" || item.Venue == "" || item.Date == "" {
			s.log.Warn().
				Str("artist", artistName).
				Interface("item", item).
				Msg("skipping incomplete item in model response")
			continue
		}
		events = append(events, normalize(item, artistName, pageURL))
	}

	s.log.Info().
		Str("artist", artistName).
		Str("url", pageURL).
		Int("events", len(events)).
		Msg("extraction complete")

	return events, nil
}

// normalize maps one validated model item into a canonical Event.
func normalize(item rawDate, artistName, pageURL string) event.Event {
	ticketURL := item.TicketURL
	if ticketURL == "" {
		ticketURL = event.NoTicketURL
	}
	return event.Event{
		Artist:    artistName,
		Location:  item.City,
		Venue:     item.Venue,
		Date:      item.Date,
		TicketURL: ticketURL,
		Source:    event.SourceWebExtract,
		SourceURL: pageURL,
	}
}

// buildPrompt instructs the model to return only a JSON array of tour dates
// constrained to the tracked locations. The location rules are enforced by
// instruction; model-reported locations are treated as advisory downstream.
func buildPrompt(pageURL, artistName string, locations []string, content string) string {
	locationList := strings.Join(locations, ", ")

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following text scraped from %s for the artist %q.\n\n", pageURL, artistName)
	fmt.Fprintf(&b, "The user is tracking tour dates based on this list of locations: %s.\n", locationList)
	b.WriteString("The list may contain specific city names (e.g. \"Los Angeles\") or 2-letter state/province codes (e.g. \"CA\", \"BC\").\n\n")
	b.WriteString("Extract every tour date mentioned in the text that matches EITHER:\n")
	b.WriteString("1. A specific city name listed by the user.\n")
	b.WriteString("2. Any city located within a state or province code listed by the user.\n")
	b.WriteString("3. A city immediately surrounding one of the user's cities, but only if the page text itself clearly names it.\n\n")
	b.WriteString("For each matching tour date, produce a JSON object with: city (including state/province, e.g. \"Los Angeles, CA\"), venue, date (YYYY-MM-DD), and ticket_url (use \"#\" if no ticket link is available).\n\n")
	b.WriteString("If no relevant tour dates are found, return an empty JSON array [].\n\n")
	b.WriteString("Scraped text:\n")
	b.WriteString(content)
	b.WriteString("\n\nRespond ONLY with the JSON array.")
	return b.String()
}

// stripFences removes a markdown code-fence wrapper and its language tag
// from a model response, if present.
func stripFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}
