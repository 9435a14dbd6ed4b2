// Package config assembles process configuration from the environment.
// Adapters never read environment variables themselves; the CLI builds one
// Config and passes the relevant pieces into each constructor.
package config

import (
	"os"
	"time"
)

// Default timeouts. API and notification calls are short; rendering a
// third-party page through the extraction service is slow.
const (
	DefaultAPITimeout     = 10 * time.Second
	DefaultExtractTimeout = 45 * time.Second
)

// Config holds all credentials and tunables for one process.
type Config struct {
	// DataDir is where the sqlite database lives.
	DataDir string

	// TicketmasterAPIKey enables the structured events API adapter.
	TicketmasterAPIKey string

	// FirecrawlAPIKey enables the remote page-extraction service. When
	// empty, pages are fetched and reduced to text locally.
	FirecrawlAPIKey string

	// GeminiAPIKey enables the language-model extraction step.
	GeminiAPIKey string

	// Telegram notification credentials.
	TelegramBotToken string
	TelegramChatID   string

	// Twitter notification credentials (optional alternative sink).
	TwitterAPIKey       string
	TwitterAPISecret    string
	TwitterAccessToken  string
	TwitterAccessSecret string

	LogLevel string

	APITimeout     time.Duration
	ExtractTimeout time.Duration
}

// Load builds a Config from the environment.
func Load() *Config {
	return &Config{
		DataDir:             getEnv("TOURWATCH_DATA_DIR", "./data"),
		TicketmasterAPIKey:  os.Getenv("TICKETMASTER_API_KEY"),
		FirecrawlAPIKey:     os.Getenv("FIRECRAWL_API_KEY"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:      os.Getenv("TELEGRAM_CHAT_ID"),
		TwitterAPIKey:       os.Getenv("TWITTER_API_KEY"),
		TwitterAPISecret:    os.Getenv("TWITTER_API_SECRET"),
		TwitterAccessToken:  os.Getenv("TWITTER_ACCESS_TOKEN"),
		TwitterAccessSecret: os.Getenv("TWITTER_ACCESS_SECRET"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		APITimeout:          getEnvAsDuration("TOURWATCH_API_TIMEOUT", DefaultAPITimeout),
		ExtractTimeout:      getEnvAsDuration("TOURWATCH_EXTRACT_TIMEOUT", DefaultExtractTimeout),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
