package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFirecrawlFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/scrape" {
			t.Errorf("path = %q, want /v1/scrape", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer fc-key" {
			t.Errorf("Authorization = %q", got)
		}
		fmt.Fprint(w, `{"success": true, "data": {"markdown": "# Tour Dates\nMarch 3 - Seattle"}}`)
	}))
	defer server.Close()

	f := NewFirecrawlFetcher("fc-key", 0, zerolog.Nop())
	f.SetBaseURL(server.URL)

	result := f.Fetch(context.Background(), "https://band.example/tour")

	if !result.Success {
		t.Fatalf("expected success, got error: %s", result.Error)
	}
	if !strings.Contains(result.Content, "Tour Dates") {
		t.Errorf("content = %q", result.Content)
	}
}

func TestFirecrawlFetch_EmptyContentIsDistinctFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "data": {"markdown": ""}}`)
	}))
	defer server.Close()

	f := NewFirecrawlFetcher("fc-key", 0, zerolog.Nop())
	f.SetBaseURL(server.URL)

	result := f.Fetch(context.Background(), "https://band.example/tour")

	if result.Success {
		t.Fatal("expected failure for empty content")
	}
	if !strings.Contains(result.Error, "no content") {
		t.Errorf("error = %q, want an empty-content reason", result.Error)
	}
}

func TestFirecrawlFetch_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false, "error": "render timed out"}`)
	}))
	defer server.Close()

	f := NewFirecrawlFetcher("fc-key", 0, zerolog.Nop())
	f.SetBaseURL(server.URL)

	result := f.Fetch(context.Background(), "https://band.example/tour")

	if result.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Error, "render timed out") {
		t.Errorf("error = %q, want the service reason included", result.Error)
	}
	// Message must be distinguishable from the empty-content case
	if strings.Contains(result.Error, "no content") {
		t.Errorf("error %q should not read as empty content", result.Error)
	}
}

func TestFirecrawlFetch_MissingKey(t *testing.T) {
	f := NewFirecrawlFetcher("", 0, zerolog.Nop())

	result := f.Fetch(context.Background(), "https://band.example/tour")

	if result.Success {
		t.Fatal("expected failure without an API key")
	}
	if !strings.Contains(result.Error, "not configured") {
		t.Errorf("error = %q", result.Error)
	}
}

func TestPageFetch_ExtractsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><style>.x{}</style></head><body>
			<script>var hidden = true;</script>
			<h1>Tour   Dates</h1>
			<p>March 3 - The Showbox, Seattle</p>
		</body></html>`)
	}))
	defer server.Close()

	f := NewPageFetcher(0, zerolog.Nop())
	result := f.Fetch(context.Background(), server.URL)

	if !result.Success {
		t.Fatalf("expected success, got error: %s", result.Error)
	}
	if !strings.Contains(result.Content, "Tour Dates") {
		t.Errorf("content missing heading: %q", result.Content)
	}
	if !strings.Contains(result.Content, "The Showbox, Seattle") {
		t.Errorf("content missing event line: %q", result.Content)
	}
	if strings.Contains(result.Content, "hidden") {
		t.Errorf("script content leaked into text: %q", result.Content)
	}
}

func TestPageFetch_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	f := NewPageFetcher(0, zerolog.Nop())
	result := f.Fetch(context.Background(), server.URL)

	if result.Success {
		t.Fatal("expected failure for 404")
	}
	if !strings.Contains(result.Error, "404") {
		t.Errorf("error = %q", result.Error)
	}
}

func TestPageFetch_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // force connection refused

	f := NewPageFetcher(0, zerolog.Nop())
	result := f.Fetch(context.Background(), server.URL)

	if result.Success {
		t.Fatal("expected failure for refused connection")
	}
	if result.Error == "" {
		t.Error("expected an error reason")
	}
}
