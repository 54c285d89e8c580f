package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// Helper to set environment variable for test and restore after
func setEnvForTest(t *testing.T, key, value string) {
	t.Helper()
	old, existed := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if existed {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

// Helper to unset environment variable for test and restore after
func unsetEnvForTest(t *testing.T, key string) {
	t.Helper()
	old, existed := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if existed {
			os.Setenv(key, old)
		}
	})
}

// clearAllEnvVars clears all config-related environment variables for clean tests
func clearAllEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		EnvAPIKey, EnvBaseURL, EnvModel,
		EnvSystemPrompt, EnvPost,
		EnvCachePath, EnvRateLimitRetries,
		EnvLogLevel,
	}
	for _, env := range envVars {
		unsetEnvForTest(t, env)
	}
}

// runInTempDir runs the test in a temporary directory to isolate from config files
func runInTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change to temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(oldWd)
	})

	// Override HOME to prevent loading user config files
	setEnvForTest(t, "HOME", tmpDir)
	unsetEnvForTest(t, "XDG_CONFIG_HOME")

	return tmpDir
}

// =============================================================================
// Validate Tests
// =============================================================================

func TestValidate_Defaults(t *testing.T) {
	home := runInTempDir(t)
	clearAllEnvVars(t)

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.SystemPrompt != DefaultSystemMessage {
		t.Errorf("SystemPrompt = %q, want default", cfg.SystemPrompt)
	}
	if cfg.Post != "" {
		t.Errorf("Post = %q, want empty", cfg.Post)
	}
	if want := filepath.Join(home, ".gpt-cache.json"); cfg.CachePath != want {
		t.Errorf("CachePath = %q, want %q", cfg.CachePath, want)
	}
	if cfg.RateLimitRetries != 0 {
		t.Errorf("RateLimitRetries = %d, want 0", cfg.RateLimitRetries)
	}
	if !cfg.IsCanonicalEndpoint() {
		t.Error("IsCanonicalEndpoint() should be true for the default base URL")
	}
}

func TestValidate_FromEnvironment(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)

	setEnvForTest(t, EnvAPIKey, "  sk-test  ")
	setEnvForTest(t, EnvBaseURL, "http://localhost:8080/")
	setEnvForTest(t, EnvModel, "gpt-4.1")
	setEnvForTest(t, EnvSystemPrompt, "Custom prompt")
	setEnvForTest(t, EnvPost, "out")
	setEnvForTest(t, EnvCachePath, "/tmp/custom-cache.json")
	setEnvForTest(t, EnvRateLimitRetries, "3")
	setEnvForTest(t, EnvLogLevel, "debug")

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want %q (trimmed)", cfg.APIKey, "sk-test")
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q, want trailing slash removed", cfg.BaseURL)
	}
	if cfg.Model != "gpt-4.1" {
		t.Errorf("Model = %q, want %q", cfg.Model, "gpt-4.1")
	}
	if cfg.SystemPrompt != "Custom prompt" {
		t.Errorf("SystemPrompt = %q, want %q", cfg.SystemPrompt, "Custom prompt")
	}
	if cfg.Post != "out" {
		t.Errorf("Post = %q, want %q", cfg.Post, "out")
	}
	if cfg.CachePath != "/tmp/custom-cache.json" {
		t.Errorf("CachePath = %q, want %q", cfg.CachePath, "/tmp/custom-cache.json")
	}
	if cfg.RateLimitRetries != 3 {
		t.Errorf("RateLimitRetries = %d, want 3", cfg.RateLimitRetries)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.IsCanonicalEndpoint() {
		t.Error("IsCanonicalEndpoint() should be false for a custom base URL")
	}
}

func TestValidate_FlagOverridesEnvironment(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)

	setEnvForTest(t, EnvModel, "env-model")
	setEnvForTest(t, EnvBaseURL, "http://env.example.com")
	setEnvForTest(t, EnvPost, "copy")

	cfg := NewConfig()
	cfg.Model = "flag-model"
	cfg.BaseURL = "http://flag.example.com"
	cfg.Post = "out"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Model != "flag-model" {
		t.Errorf("Model = %q, want flag value", cfg.Model)
	}
	if cfg.BaseURL != "http://flag.example.com" {
		t.Errorf("BaseURL = %q, want flag value", cfg.BaseURL)
	}
	if cfg.Post != "out" {
		t.Errorf("Post = %q, want flag value", cfg.Post)
	}
}

func TestValidate_InvalidBaseURL(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)

	tests := []string{"not a url", "ftp://example.com", "http://"}
	for _, baseURL := range tests {
		t.Run(baseURL, func(t *testing.T) {
			cfg := NewConfig()
			cfg.BaseURL = baseURL
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidBaseURL) {
				t.Errorf("Validate() error = %v, want ErrInvalidBaseURL", err)
			}
		})
	}
}

func TestValidate_InvalidRateLimitRetries(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)

	for _, value := range []string{"-1", "many"} {
		t.Run(value, func(t *testing.T) {
			setEnvForTest(t, EnvRateLimitRetries, value)
			cfg := NewConfig()
			if err := cfg.Validate(); err != ErrInvalidRateLimitRetries {
				t.Errorf("Validate() error = %v, want ErrInvalidRateLimitRetries", err)
			}
		})
	}
}

func TestValidate_CachePathExpandsHome(t *testing.T) {
	home := runInTempDir(t)
	clearAllEnvVars(t)
	setEnvForTest(t, EnvCachePath, "~/caches/gpt.json")

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if want := filepath.Join(home, "caches", "gpt.json"); cfg.CachePath != want {
		t.Errorf("CachePath = %q, want %q", cfg.CachePath, want)
	}
}

// =============================================================================
// Endpoint Tests
// =============================================================================

func TestIsCanonicalEndpoint(t *testing.T) {
	tests := []struct {
		baseURL string
		want    bool
	}{
		{"https://api.openai.com", true},
		{"https://api.openai.com/", true},
		{"http://api.openai.com", false},
		{"https://openai.example.com", false},
		{"http://127.0.0.1:11434", false},
	}

	for _, tt := range tests {
		t.Run(tt.baseURL, func(t *testing.T) {
			cfg := &Config{BaseURL: tt.baseURL}
			if got := cfg.IsCanonicalEndpoint(); got != tt.want {
				t.Errorf("IsCanonicalEndpoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesEndpoint(t *testing.T) {
	tests := []struct {
		baseURL string
		other   string
		want    bool
	}{
		{"http://127.0.0.1:8080", "http://127.0.0.1:8080", true},
		{"http://127.0.0.1:8080/", "http://127.0.0.1:8080", true},
		{"http://127.0.0.1:8080", "http://127.0.0.1:8080/", true},
		{"http://127.0.0.1:8080", "http://127.0.0.1:9090", false},
		{"https://api.openai.com", DefaultBaseURL, true},
	}

	for _, tt := range tests {
		t.Run(tt.baseURL+" vs "+tt.other, func(t *testing.T) {
			cfg := &Config{BaseURL: tt.baseURL}
			if got := cfg.MatchesEndpoint(tt.other); got != tt.want {
				t.Errorf("MatchesEndpoint(%q) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestGetChatCompletionsURL(t *testing.T) {
	tests := []struct {
		baseURL string
		want    string
	}{
		{"https://api.openai.com", "https://api.openai.com/v1/chat/completions"},
		{"http://localhost:8080/", "http://localhost:8080/v1/chat/completions"},
	}

	for _, tt := range tests {
		t.Run(tt.baseURL, func(t *testing.T) {
			cfg := &Config{BaseURL: tt.baseURL}
			if got := cfg.GetChatCompletionsURL(); got != tt.want {
				t.Errorf("GetChatCompletionsURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	setEnvForTest(t, "HOME", home)

	tests := []struct {
		path string
		want string
	}{
		{"~", home},
		{"~/cache.json", filepath.Join(home, "cache.json")},
		{"/abs/cache.json", "/abs/cache.json"},
		{"relative.json", "relative.json"},
		{"~other/cache.json", "~other/cache.json"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ExpandHome(tt.path); got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
