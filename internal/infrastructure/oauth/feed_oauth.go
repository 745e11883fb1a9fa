package oauth

import (
	"context"
	"net/http"

	"flightpocket/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// FeedOAuth handles OAuth client-credentials authentication with the flight
// feed for deployments where the feed is not open or API-key based.
type FeedOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewFeedOAuth creates a new feed OAuth handler
func NewFeedOAuth(tokenURL, clientID, clientSecret string, logger logger.Logger) *FeedOAuth {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	return &FeedOAuth{
		config: config,
		logger: logger,
	}
}

// GetTokenSource returns a token source that refreshes itself as tokens expire
func (o *FeedOAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	return o.config.TokenSource(ctx)
}

// HTTPClient returns an http client that injects the bearer token into every
// request sent to the feed.
func (o *FeedOAuth) HTTPClient(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, o.GetTokenSource(ctx))
}
