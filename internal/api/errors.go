package api

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingCredential is returned when no API key is configured
var ErrMissingCredential = errors.New("OPENAI_API_KEY environment variable is not defined")

// APIError represents a non-success, non-rate-limit response
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Request failed with status code: %s\nError response body: %s", e.Status, e.Body)
}

// TransportError wraps a failure to reach the API
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to send request to %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RateLimitedError is returned when the configured retry cap is exhausted
type RateLimitedError struct {
	Attempts int
	Waited   time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("still rate limited after %d retries (waited %s)", e.Attempts, e.Waited)
}

// MalformedResponseError is returned when a response body or a cached
// response cannot be decoded
type MalformedResponseError struct {
	Source string // "response" or "cache"
	Err    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Source, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
