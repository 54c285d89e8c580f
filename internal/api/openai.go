package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quocvuong92/gpt-cli/internal/cache"
	"github.com/quocvuong92/gpt-cli/internal/config"
	"github.com/quocvuong92/gpt-cli/internal/constants"
	"github.com/quocvuong92/gpt-cli/internal/logging"
)

// OpenAIClient is the live Chat Completions client
type OpenAIClient struct {
	httpClient *http.Client
	config     *config.Config
	logger     *logging.Logger

	// canonical is the only base URL whose responses are cached
	canonical string
	cache     *cache.ResponseCache
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewOpenAIClient creates a new Chat Completions client
func NewOpenAIClient(cfg *config.Config, opts ...Option) *OpenAIClient {
	transport := http.DefaultTransport
	logger := logging.DefaultLogger

	if cfg.Verbose {
		logger = logging.New(logging.Options{
			Level:  logging.LevelDebug,
			Format: logging.FormatText,
		})
		transport = logging.NewLoggingRoundTripper(http.DefaultTransport, logging.NewHTTPLogger(logger), true)
	}

	c := &OpenAIClient{
		httpClient: &http.Client{
			Timeout:   constants.DefaultAPITimeout,
			Transport: transport,
		},
		config:    cfg,
		logger:    logger,
		canonical: constants.DefaultBaseURL,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// cacheable reports whether this client talks to the canonical endpoint
func (c *OpenAIClient) cacheable() bool {
	return c.config.MatchesEndpoint(c.canonical)
}

// responseCache opens the cache file on first use
func (c *OpenAIClient) responseCache() (*cache.ResponseCache, error) {
	if c.cache != nil {
		return c.cache, nil
	}
	path := c.config.CachePath
	if path == "" {
		path = config.DefaultCachePath()
	}
	rc, err := cache.Open(path)
	if err != nil {
		return nil, err
	}
	c.cache = rc
	return rc, nil
}

// Ask sends messages to the Chat Completions endpoint.
//
// Responses from the canonical endpoint are served from and stored in the
// response cache. A 429 is retried with the same payload after the delay
// the server asks for, without limit unless RateLimitRetries is set.
func (c *OpenAIClient) Ask(ctx context.Context, messages []Message) (*ChatResponse, error) {
	if c.config.APIKey == "" {
		return nil, ErrMissingCredential
	}

	key, err := CacheKey(messages)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal messages: %w", err)
	}

	var store *cache.ResponseCache
	if c.cacheable() {
		store, err = c.responseCache()
		if err != nil {
			return nil, err
		}
		if cached, ok := store.Get(key); ok {
			var resp ChatResponse
			if err := json.Unmarshal([]byte(cached), &resp); err != nil {
				return nil, &MalformedResponseError{Source: "cache", Err: err}
			}
			c.logger.Debug("Cache hit", logging.Fields{"id": resp.ID, "cache": store.Path()})
			return &resp, nil
		}
	}

	model := c.config.Model
	if model == "" {
		model = constants.DefaultModel
	}
	payload, err := marshalRaw(ChatRequest{Model: model, Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var state rateLimitState
	for {
		status, statusText, body, err := c.post(ctx, payload)
		if err != nil {
			return nil, &TransportError{URL: c.config.GetChatCompletionsURL(), Err: err}
		}

		switch {
		case status >= 200 && status < 300:
			return c.complete(body, store, key)

		case status == http.StatusTooManyRequests:
			wait := rateLimitWait(body)
			if err := state.next(c.config.RateLimitRetries, wait); err != nil {
				return nil, err
			}
			c.logger.Warn("Rate limited, retrying", logging.Fields{
				"attempt": state.attempts,
				"wait":    wait.String(),
			})
			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}

		default:
			return nil, &APIError{StatusCode: status, Status: statusText, Body: string(body)}
		}
	}
}

// post sends one request and reads the whole response body
func (c *OpenAIClient) post(ctx context.Context, payload []byte) (int, string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GetChatCompletionsURL(), bytes.NewReader(payload))
	if err != nil {
		return 0, "", nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, resp.Status, body, nil
}

// complete decodes a success body and caches it when the model finished
func (c *OpenAIClient) complete(body []byte, store *cache.ResponseCache, key string) (*ChatResponse, error) {
	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &MalformedResponseError{Source: "response", Err: err}
	}
	if len(resp.Choices) == 0 {
		c.logger.Warn("Response has no choices", logging.Fields{"id": resp.ID})
		return &resp, nil
	}

	choice := resp.Choices[0]
	if !choice.Complete() {
		c.logger.Warn("Response did not finish", logging.Fields{
			"finish_reason": *choice.FinishReason,
			"index":         choice.Index,
			"content":       choice.Message.Content,
		})
		return &resp, nil
	}

	if store != nil {
		encoded, err := marshalRaw(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to encode response for cache: %w", err)
		}
		if err := store.Set(key, string(encoded)); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}
