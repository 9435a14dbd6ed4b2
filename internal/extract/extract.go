// Package extract fetches a text representation of a web page for the
// language-model extraction step. Two fetchers are provided: a remote
// Firecrawl-style rendering service, and a local fallback that downloads the
// page and reduces the HTML to text.
//
// The Result contract distinguishes three outcomes: fetch failed, fetched
// but empty, and fetched with content. Callers must not treat an empty page
// the same as a failed fetch.
package extract

import "context"

// Result is the outcome of fetching one URL.
type Result struct {
	Success bool   // true only when content was actually retrieved
	URL     string
	Content string // text or markdown representation of the page
	Error   string // short reason when Success is false
}

// Fetcher retrieves a text representation of a page. Implementations never
// return a Go error; all failure modes are reported through the Result so
// one bad URL cannot abort a multi-URL check.
type Fetcher interface {
	Fetch(ctx context.Context, url string) Result
}
