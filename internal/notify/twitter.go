package notify

import (
	"fmt"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/rs/zerolog"
)

const tweetMaxLen = 280

// Twitter posts messages as tweets. It is an alternative sink for operators
// who prefer a public feed over a private chat.
type Twitter struct {
	client *twitter.Client
	log    zerolog.Logger
}

// TwitterCredentials holds the OAuth1 credential set.
type TwitterCredentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// NewTwitter creates a Twitter sink.
func NewTwitter(creds TwitterCredentials, log zerolog.Logger) (*Twitter, error) {
	if creds.APIKey == "" || creds.APISecret == "" || creds.AccessToken == "" || creds.AccessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials")
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	return &Twitter{
		client: twitter.NewClient(httpClient),
		log:    log.With().Str("notifier", "twitter").Logger(),
	}, nil
}

// Send posts one tweet, truncating to the 280-character limit if needed.
func (t *Twitter) Send(message string) bool {
	if len(message) > tweetMaxLen {
		message = truncate(message, tweetMaxLen)
		t.log.Warn().Msg("message truncated to tweet length limit")
	}

	_, _, err := t.client.Statuses.Update(message, nil)
	if err != nil {
		t.log.Error().Err(err).Msg("posting tweet")
		return false
	}

	t.log.Info().Msg("tweet posted")
	return true
}
