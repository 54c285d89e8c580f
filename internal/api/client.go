package api

import (
	"context"
	"net/http"
	"time"

	"github.com/quocvuong92/gpt-cli/internal/cache"
	"github.com/quocvuong92/gpt-cli/internal/config"
)

// Completer defines the interface for chat completion clients.
// FixedClient and OpenAIClient implement it, so debug mode is chosen once
// at construction instead of being checked on every request.
type Completer interface {
	// Ask sends the conversation and returns the model's response
	Ask(ctx context.Context, messages []Message) (*ChatResponse, error)
}

// Ensure both clients implement Completer interface
var _ Completer = (*OpenAIClient)(nil)
var _ Completer = (*FixedClient)(nil)

// Option customizes an OpenAIClient
type Option func(*OpenAIClient)

// WithHTTPClient replaces the HTTP client used for requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *OpenAIClient) {
		c.httpClient = hc
	}
}

// WithSleep replaces the function used to wait out a rate limit
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *OpenAIClient) {
		c.sleep = sleep
	}
}

// WithCache uses an already opened response cache instead of opening
// cfg.CachePath on the first cacheable request
func WithCache(rc *cache.ResponseCache) Option {
	return func(c *OpenAIClient) {
		c.cache = rc
	}
}

// NewClient creates a completion client based on configuration.
// Debug mode returns the canned FixedClient and never touches the network,
// the cache or the credential.
func NewClient(cfg *config.Config, opts ...Option) Completer {
	if cfg.Debug {
		return NewFixedClient()
	}
	return NewOpenAIClient(cfg, opts...)
}
