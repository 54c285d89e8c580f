// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// Version is the application version printed by --version.
const Version = "0.4.0"

// Timeout constants used across the application
const (
	// DefaultAPITimeout is the timeout for a single chat completion request
	DefaultAPITimeout = 120 * time.Second
)

// Application defaults
const (
	// DefaultBaseURL is the canonical API host. Responses are only cached
	// when requests go to this host.
	DefaultBaseURL = "https://api.openai.com"
	// ChatCompletionsPath is appended to the base URL for every request
	ChatCompletionsPath = "/v1/chat/completions"
	DefaultModel        = "gpt-4o"
	// DefaultSystemMessage keeps the model answering with a bare command.
	DefaultSystemMessage = "You are a linux terminal command generator. I will describe a task and you will respond with linux command, do not include any description, explanation or any extrenous syntax."
	// DefaultCacheFile is created in the user's home directory
	DefaultCacheFile = ".gpt-cache.json"
)

// AppName names the config directories
const AppName = "gpt-cli"
