package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const (
	userAgent          = "tourwatch/1.0 (github.com/tourwatch/tourwatch)"
	defaultPageTimeout = 45 * time.Second
)

// PageFetcher downloads a page directly and reduces the HTML to plain text.
// It is the fallback when no rendering service is configured; it cannot see
// script-generated content.
type PageFetcher struct {
	httpClient *http.Client
	log        zerolog.Logger
}

// NewPageFetcher creates a local page fetcher.
func NewPageFetcher(timeout time.Duration, log zerolog.Logger) *PageFetcher {
	if timeout <= 0 {
		timeout = defaultPageTimeout
	}
	return &PageFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log.With().Str("fetcher", "page").Logger(),
	}
}

// Fetch downloads one page and extracts its visible text.
func (f *PageFetcher) Fetch(ctx context.Context, pageURL string) Result {
	result := Result{URL: pageURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("creating request: %v", err)
		return result
	}
	req.Header.Set("User-Agent", userAgent)

	f.log.Info().Str("url", pageURL).Msg("fetching page")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("fetching page: %v", err)
		f.log.Error().Str("url", pageURL).Msg(result.Error)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
		f.log.Error().Str("url", pageURL).Msg(result.Error)
		return result
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		result.Error = fmt.Sprintf("parsing HTML: %v", err)
		return result
	}

	text := pageText(doc)
	if text == "" {
		result.Error = "page fetched but contained no text content"
		f.log.Warn().Str("url", pageURL).Msg(result.Error)
		return result
	}

	result.Success = true
	result.Content = text
	f.log.Info().Str("url", pageURL).Int("bytes", len(text)).Msg("fetch successful")
	return result
}

// pageText extracts visible text from a document, dropping script and style
// blocks and collapsing whitespace line by line.
func pageText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()

	body := doc.Find("body")
	raw := body.Text()
	if body.Length() == 0 {
		raw = doc.Text()
	}

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
