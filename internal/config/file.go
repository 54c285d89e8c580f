package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/gpt-cli/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	// API settings
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`

	// Prompt and answer handling
	SystemPrompt string `yaml:"system_prompt,omitempty"`
	Post         string `yaml:"post,omitempty"` // "confirm", "copy", "out"

	// Cache settings
	CachePath string `yaml:"cache_path,omitempty"`

	// RateLimitRetries caps 429 retries; nil or 0 keeps retrying
	RateLimitRetries *int `yaml:"rate_limit_retries,omitempty"`

	// LogLevel is one of debug, info, warn, error, none
	LogLevel string `yaml:"log_level,omitempty"`

	// Default flags
	Defaults *DefaultsConfig `yaml:"defaults,omitempty"`
}

// DefaultsConfig holds default flag values
type DefaultsConfig struct {
	Render bool `yaml:"render,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+constants.AppName, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, ConfigFileName))
	}

	return paths
}

// LoadConfigFile attempts to load configuration from a file
func LoadConfigFile() (*FileConfig, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return loadConfigFromPath(path)
		}
	}

	// No config file found, return empty config
	return &FileConfig{}, nil
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config
// File config has lower priority than environment variables and CLI flags
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if c.APIKey == "" && fc.APIKey != "" {
		c.APIKey = fc.APIKey
	}
	if c.BaseURL == "" && fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if c.Model == "" && fc.Model != "" {
		c.Model = fc.Model
	}
	if c.SystemPrompt == "" && fc.SystemPrompt != "" {
		c.SystemPrompt = fc.SystemPrompt
	}
	if c.Post == "" && fc.Post != "" {
		c.Post = fc.Post
	}
	if c.CachePath == "" && fc.CachePath != "" {
		c.CachePath = fc.CachePath
	}
	if c.LogLevel == "" && fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if c.RateLimitRetries < 0 && fc.RateLimitRetries != nil && *fc.RateLimitRetries >= 0 {
		c.RateLimitRetries = *fc.RateLimitRetries
	}

	// Since we can't distinguish between "flag not set" and "flag set to false",
	// we apply defaults only for "true" values in the config file
	if fc.Defaults != nil && fc.Defaults.Render && !c.Render {
		c.Render = true
	}
}

// CreateDefaultConfigFile creates a default config file at the user config directory
func CreateDefaultConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, constants.AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	defaultConfig := `# gpt-cli configuration
# Environment variables and flags override every value below.

# API key (prefer the OPENAI_API_KEY environment variable)
# api_key: sk-...

# API host. Responses are cached only for https://api.openai.com
# base_url: https://api.openai.com

# Model used for completions
# model: gpt-4o

# System prompt sent before every task description
# system_prompt: You are a linux terminal command generator. ...

# What to do with the answer: confirm (run after asking), copy, or out
# post: confirm

# Response cache file
# cache_path: ~/.gpt-cache.json

# Maximum number of rate limit retries (0 retries forever)
# rate_limit_retries: 0

# Log level on stderr: debug, info, warn, error or none
# log_level: warn

# defaults:
#   render: false
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
