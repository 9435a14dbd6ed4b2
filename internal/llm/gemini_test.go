package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-1.5-flash-lite:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "g-key" {
			t.Errorf("key = %q", got)
		}
		fmt.Fprint(w, `{"candidates": [{"content": {"parts": [{"text": "[]"}]}}]}`)
	}))
	defer server.Close()

	c := NewGeminiClient("g-key", 0, zerolog.Nop())
	c.SetBaseURL(server.URL)

	text, err := c.Complete(context.Background(), "find tour dates")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if text != "[]" {
		t.Errorf("text = %q, want []", text)
	}
}

func TestComplete_MissingKey(t *testing.T) {
	c := NewGeminiClient("", 0, zerolog.Nop())

	_, err := c.Complete(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error without API key")
	}
	if !strings.Contains(err.Error(), "not configured") {
		t.Errorf("error = %v, want configuration error", err)
	}
}

func TestComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"code": 400, "message": "invalid model"}}`)
	}))
	defer server.Close()

	c := NewGeminiClient("g-key", 0, zerolog.Nop())
	c.SetBaseURL(server.URL)

	_, err := c.Complete(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid model") {
		t.Errorf("error = %v, want API message included", err)
	}
}

func TestComplete_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates": []}`)
	}))
	defer server.Close()

	c := NewGeminiClient("g-key", 0, zerolog.Nop())
	c.SetBaseURL(server.URL)

	_, err := c.Complete(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for empty candidates")
	}
}
