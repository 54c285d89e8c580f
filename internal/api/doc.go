// Package api provides the chat completion client behind the CLI.
//
// # Architecture
//
//   - client.go: Completer interface, options and the NewClient factory
//   - openai.go: live client for OpenAI-compatible /v1/chat/completions
//   - fixed.go: canned client used by --debug
//   - types.go: request, response and message types
//   - retry.go: rate limit delay parsing and retry bookkeeping
//   - errors.go: typed errors inspected by the command layer
//
// # Caching
//
// Only requests to https://api.openai.com use the response cache. The key
// is the JSON array of prompt messages and the value is the JSON response,
// stored only when the first choice finished normally. Custom endpoints
// (proxies, self-hosted models) never read or write the shared cache.
//
// # Rate limits
//
// A 429 response is retried with the identical payload after sleeping for
// the body's seconds_to_wait (0 when absent). There is no retry limit
// unless config.RateLimitRetries is positive.
//
// # Usage
//
//	cfg := config.NewConfig()
//	if err := cfg.Validate(); err != nil {
//	    // handle error
//	}
//	client := api.NewClient(cfg)
//	resp, err := client.Ask(ctx, api.NewPrompt(cfg.SystemPrompt, "list files"))
package api
