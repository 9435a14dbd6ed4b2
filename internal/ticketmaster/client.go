package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tourwatch/tourwatch/internal/event"
	"github.com/tourwatch/tourwatch/internal/pipeline"
)

// DefaultBaseURL is the Ticketmaster Discovery API events endpoint.
const DefaultBaseURL = "https://app.ticketmaster.com/discovery/v2/events.json"

const (
	defaultTimeout = 10 * time.Second
	pageSize       = 100

	// The Discovery API allows 5 requests/second; stay under it.
	requestsPerSecond = 4
	maxRetries        = 2
)

// Client queries the Ticketmaster Discovery API for events matching an
// artist keyword in specific locations. Requests are rate limited and
// transient errors are retried with exponential backoff.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// NewClient creates a new Discovery API client.
func NewClient(apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		log:     log.With().Str("adapter", "ticketmaster").Logger(),
	}
}

// SetBaseURL overrides the API endpoint. Used in tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// apiResponse mirrors the Discovery API events payload.
type apiResponse struct {
	Embedded struct {
		Events []apiEvent `json:"events"`
	} `json:"_embedded"`
}

type apiEvent struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
		} `json:"start"`
	} `json:"dates"`
	Embedded struct {
		Venues []apiVenue `json:"venues"`
	} `json:"_embedded"`
}

type apiVenue struct {
	Name string `json:"name"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	State struct {
		StateCode string `json:"stateCode"`
	} `json:"state"`
}

// Search issues one query per distinct location and returns the matching
// events. A failed location is reported as a SourceFailure and does not stop
// the remaining locations.
func (c *Client) Search(ctx context.Context, artistName string, locations []string, category string) ([]event.Event, []pipeline.SourceFailure) {
	var found []event.Event
	var failures []pipeline.SourceFailure
	processed := make(map[string]bool)

	for _, location := range locations {
		location = strings.TrimSpace(location)
		if location == "" || processed[strings.ToLower(location)] {
			continue
		}
		processed[strings.ToLower(location)] = true

		isRegion := event.IsRegionCode(location)
		searchDesc := fmt.Sprintf("city %s", location)
		if isRegion {
			searchDesc = fmt.Sprintf("state/province %s", location)
		}

		c.log.Info().
			Str("artist", artistName).
			Str("location", location).
			Msg("searching Ticketmaster")

		resp, err := c.query(ctx, artistName, location, isRegion, category)
		if err != nil {
			c.log.Error().Err(err).Str("location", location).Msg("Ticketmaster search failed")
			failures = append(failures, pipeline.SourceFailure{
				Source: fmt.Sprintf("Ticketmaster (%s)", searchDesc),
				Reason: err.Error(),
			})
			continue
		}

		found = append(found, c.matchEvents(resp, artistName, location, isRegion)...)
	}

	unique := dedupLocal(found)
	c.log.Info().
		Str("artist", artistName).
		Int("events", len(unique)).
		Msg("Ticketmaster search complete")
	return unique, failures
}

// query performs one rate-limited, retried request for a single location.
func (c *Client) query(ctx context.Context, artistName, location string, isRegion bool, category string) (*apiResponse, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("keyword", artistName)
	params.Set("size", fmt.Sprintf("%d", pageSize))
	if category != "" {
		params.Set("classificationName", category)
	}
	if isRegion {
		params.Set("stateCode", strings.ToUpper(location))
	} else {
		params.Set("city", location)
	}

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	var result *apiResponse
	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("making request: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			// fall through to decode
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("API returned status %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("API returned status %d", resp.StatusCode))
		}

		var decoded apiResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return backoff.Permanent(fmt.Errorf("parsing response: %w", err))
		}
		result = &decoded
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return result, nil
}

// matchEvents filters one location's API results down to events that both
// mention the artist in the title and actually take place in the searched
// location. The second check prevents cross-contamination when a state-level
// search returns keyword matches from a different state.
func (c *Client) matchEvents(resp *apiResponse, artistName, location string, isRegion bool) []event.Event {
	var matched []event.Event

	for _, apiEvt := range resp.Embedded.Events {
		if !strings.Contains(strings.ToLower(apiEvt.Name), strings.ToLower(artistName)) {
			continue
		}

		var venue apiVenue
		if len(apiEvt.Embedded.Venues) > 0 {
			venue = apiEvt.Embedded.Venues[0]
		}

		eventCity := venue.City.Name
		eventState := venue.State.StateCode

		if isRegion {
			if !strings.EqualFold(eventState, location) {
				continue
			}
		} else {
			if !strings.EqualFold(eventCity, location) {
				continue
			}
		}

		displayLocation := eventCity
		if eventState != "" {
			displayLocation = fmt.Sprintf("%s, %s", eventCity, eventState)
		}

		date := "Date not specified"
		if apiEvt.Dates.Start.LocalDate != "" {
			// Reformat parseable dates; pass anything else through as-is.
			date = event.FormatDateLong(apiEvt.Dates.Start.LocalDate)
		}

		ticketURL := apiEvt.URL
		if ticketURL == "" {
			ticketURL = event.NoTicketURL
		}

		venueName := venue.Name
		if venueName == "" {
			venueName = "N/A"
		}

		c.log.Debug().
			Str("venue", venueName).
			Str("location", displayLocation).
			Str("date", date).
			Msg("found potential date")

		matched = append(matched, event.Event{
			Artist:    artistName,
			Location:  displayLocation,
			Venue:     venueName,
			Date:      date,
			TicketURL: ticketURL,
			Source:    event.SourceTicketmaster,
			SourceURL: ticketURL,
		})
	}

	return matched
}

// dedupLocal collapses records sharing (venue, date, location); the API can
// return the same show labelled slightly differently.
func dedupLocal(events []event.Event) []event.Event {
	seen := make(map[string]bool, len(events))
	unique := make([]event.Event, 0, len(events))
	for _, evt := range events {
		key := strings.ToLower(evt.Venue) + "|" + evt.Date + "|" + strings.ToLower(evt.Location)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, evt)
	}
	return unique
}
