package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	telegramAPIBase = "https://api.telegram.org/bot"
	telegramMaxLen  = 4096
	telegramTimeout = 10 * time.Second
)

// Telegram sends messages through the Telegram Bot API.
type Telegram struct {
	botToken   string
	chatID     string
	apiBase    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewTelegram creates a Telegram sink.
func NewTelegram(botToken, chatID string, log zerolog.Logger) (*Telegram, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  telegramAPIBase,
		httpClient: &http.Client{
			Timeout: telegramTimeout,
		},
		log: log.With().Str("notifier", "telegram").Logger(),
	}, nil
}

// SetAPIBase overrides the Bot API base URL. Used in tests.
func (t *Telegram) SetAPIBase(base string) {
	t.apiBase = base
}

// Send delivers one message, truncating it to Telegram's limit if needed.
func (t *Telegram) Send(message string) bool {
	if message == "" {
		t.log.Error().Msg("refusing to send empty message")
		return false
	}

	if len(message) > telegramMaxLen {
		message = truncate(message, telegramMaxLen)
		t.log.Warn().Msg("message truncated to Telegram length limit")
	}

	payload := map[string]interface{}{
		"chat_id":                  t.chatID,
		"text":                     message,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		t.log.Error().Err(err).Msg("marshaling payload")
		return false
	}

	url := fmt.Sprintf("%s%s/sendMessage", t.apiBase, t.botToken)
	resp, err := t.httpClient.Post(url, "application/json", bytes.NewReader(jsonData))
	if err != nil {
		t.log.Error().Err(err).Msg("sending message")
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.log.Error().Err(err).Msg("reading response")
		return false
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.log.Error().Err(err).Int("status", resp.StatusCode).Msg("parsing response")
		return false
	}

	if !result.OK {
		t.log.Error().Str("description", result.Description).Msg("Telegram API error")
		return false
	}

	t.log.Info().Msg("message sent")
	return true
}
