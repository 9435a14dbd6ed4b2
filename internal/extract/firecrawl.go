package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFirecrawlURL is the hosted Firecrawl scrape endpoint.
const DefaultFirecrawlURL = "https://api.firecrawl.dev"

// Rendering third-party pages is slow; allow well beyond the API timeout.
const defaultFirecrawlTimeout = 45 * time.Second

// FirecrawlFetcher fetches pages through the Firecrawl rendering API, which
// returns a markdown representation of the fully rendered page.
type FirecrawlFetcher struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewFirecrawlFetcher creates a fetcher backed by the Firecrawl API.
func NewFirecrawlFetcher(apiKey string, timeout time.Duration, log zerolog.Logger) *FirecrawlFetcher {
	if timeout <= 0 {
		timeout = defaultFirecrawlTimeout
	}
	return &FirecrawlFetcher{
		apiKey:  apiKey,
		baseURL: DefaultFirecrawlURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log.With().Str("fetcher", "firecrawl").Logger(),
	}
}

// SetBaseURL overrides the API endpoint. Used in tests.
func (f *FirecrawlFetcher) SetBaseURL(u string) {
	f.baseURL = u
}

type firecrawlRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
	Timeout int      `json:"timeout,omitempty"` // milliseconds
}

type firecrawlResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
	Error string `json:"error"`
}

// Fetch renders one page to markdown via the Firecrawl API.
func (f *FirecrawlFetcher) Fetch(ctx context.Context, pageURL string) Result {
	result := Result{URL: pageURL}

	if f.apiKey == "" {
		result.Error = "Firecrawl API key not configured"
		f.log.Error().Str("url", pageURL).Msg(result.Error)
		return result
	}

	payload, err := json.Marshal(firecrawlRequest{
		URL:     pageURL,
		Formats: []string{"markdown"},
		Timeout: int(f.httpClient.Timeout / time.Millisecond),
	})
	if err != nil {
		result.Error = fmt.Sprintf("encoding request: %v", err)
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/v1/scrape", bytes.NewReader(payload))
	if err != nil {
		result.Error = fmt.Sprintf("creating request: %v", err)
		return result
	}
	req.Header.Set("Authorization", "Bearer "+f.apiKey)
	req.Header.Set("Content-Type", "application/json")

	f.log.Info().Str("url", pageURL).Msg("scraping page")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("scrape request failed: %v", err)
		f.log.Error().Str("url", pageURL).Msg(result.Error)
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = fmt.Sprintf("reading response: %v", err)
		return result
	}

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Sprintf("scrape API returned status %d", resp.StatusCode)
		f.log.Error().Str("url", pageURL).Msg(result.Error)
		return result
	}

	var decoded firecrawlResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		result.Error = fmt.Sprintf("parsing response: %v", err)
		return result
	}

	if !decoded.Success {
		reason := decoded.Error
		if reason == "" {
			reason = "unknown scrape error"
		}
		result.Error = fmt.Sprintf("scrape failed: %s", reason)
		f.log.Error().Str("url", pageURL).Msg(result.Error)
		return result
	}

	// The service can report success with an empty page. That is a
	// distinct condition from a failed fetch and must read differently.
	if decoded.Data.Markdown == "" {
		result.Error = "scrape succeeded but returned no content"
		f.log.Warn().Str("url", pageURL).Msg(result.Error)
		return result
	}

	result.Success = true
	result.Content = decoded.Data.Markdown
	f.log.Info().Str("url", pageURL).Int("bytes", len(result.Content)).Msg("scrape successful")
	return result
}
