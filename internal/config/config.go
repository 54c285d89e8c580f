package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quocvuong92/gpt-cli/internal/constants"
)

// Environment variable names
const (
	// API settings
	EnvAPIKey  = "OPENAI_API_KEY"
	EnvBaseURL = "OPENAI_BASE_URL"
	EnvModel   = "GPT_MODEL"

	// Prompt and answer handling
	EnvSystemPrompt = "GPT_SYSTEM_PROMPT"
	EnvPost         = "GPT_POST"

	// Cache and retry behavior
	EnvCachePath        = "GPT_CACHE_PATH"
	EnvRateLimitRetries = "GPT_RATE_LIMIT_RETRIES"

	// Logging
	EnvLogLevel = "GPT_LOG_LEVEL"
)

// Defaults - re-exported from constants for convenience
const (
	DefaultBaseURL       = constants.DefaultBaseURL
	DefaultModel         = constants.DefaultModel
	DefaultSystemMessage = constants.DefaultSystemMessage
	DefaultAPITimeout    = constants.DefaultAPITimeout
)

// Errors
var (
	ErrInvalidBaseURL          = errors.New("invalid API base URL. Set OPENAI_BASE_URL to an http(s) URL")
	ErrInvalidRateLimitRetries = errors.New("invalid rate limit retry count. GPT_RATE_LIMIT_RETRIES must be a non-negative integer")
)

// Config holds the application configuration
type Config struct {
	// API settings
	APIKey  string
	BaseURL string
	Model   string

	// Prompt settings
	SystemPrompt string

	// Post is the raw default postprocess action ("confirm", "copy", "out").
	// Unrecognized values are resolved to confirm by the postprocess package.
	Post string

	// CachePath is the response cache file
	CachePath string

	// RateLimitRetries caps how many times a 429 is retried. Zero means no cap.
	RateLimitRetries int

	// LogLevel is the raw log level name (debug, info, warn, error, none).
	// Verbose overrides it with debug.
	LogLevel string

	// Flags
	Render  bool
	Debug   bool // Return the canned response without calling the API
	Verbose bool
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{RateLimitRetries: -1}
}

// Validate validates the configuration and loads from environment.
// Values already set (from flags) win over the environment, which wins over
// the config file, which wins over built-in defaults.
func (c *Config) Validate() error {
	// Environment first so that file values only fill what is still empty
	if c.APIKey == "" {
		c.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv(EnvBaseURL)
	}
	if c.Model == "" {
		c.Model = os.Getenv(EnvModel)
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = os.Getenv(EnvSystemPrompt)
	}
	if c.Post == "" {
		c.Post = os.Getenv(EnvPost)
	}
	if c.CachePath == "" {
		c.CachePath = os.Getenv(EnvCachePath)
	}
	if c.LogLevel == "" {
		c.LogLevel = os.Getenv(EnvLogLevel)
	}
	if c.RateLimitRetries < 0 {
		if v := os.Getenv(EnvRateLimitRetries); v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n < 0 {
				return ErrInvalidRateLimitRetries
			}
			c.RateLimitRetries = n
		}
	}

	// Config file (lowest priority)
	if fileConfig, err := LoadConfigFile(); err == nil {
		c.ApplyFileConfig(fileConfig)
	}
	// Errors loading config file are silently ignored - env vars and flags take precedence

	// Built-in defaults
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemMessage
	}
	if c.CachePath == "" {
		c.CachePath = DefaultCachePath()
	} else {
		c.CachePath = ExpandHome(c.CachePath)
	}
	if c.RateLimitRetries < 0 {
		c.RateLimitRetries = 0
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}

	return nil
}

// IsCanonicalEndpoint reports whether requests go to the default API host.
// Only the canonical endpoint reads from or writes to the response cache.
func (c *Config) IsCanonicalEndpoint() bool {
	return c.MatchesEndpoint(DefaultBaseURL)
}

// MatchesEndpoint reports whether BaseURL and baseURL name the same host,
// ignoring a trailing slash on either
func (c *Config) MatchesEndpoint(baseURL string) bool {
	return strings.TrimSuffix(c.BaseURL, "/") == strings.TrimSuffix(baseURL, "/")
}

// GetChatCompletionsURL builds the full API URL for chat completions
func (c *Config) GetChatCompletionsURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + constants.ChatCompletionsPath
}

// DefaultCachePath returns ~/.gpt-cache.json, or a file in the working
// directory when the home directory cannot be determined.
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return constants.DefaultCacheFile
	}
	return filepath.Join(home, constants.DefaultCacheFile)
}

// ExpandHome replaces a leading "~/" with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
