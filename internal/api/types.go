package api

import (
	"bytes"
	"encoding/json"
)

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents the Chat Completions API request
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Usage represents token usage statistics
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice represents a response choice
type Choice struct {
	Message      Message `json:"message"`
	FinishReason *string `json:"finish_reason"`
	Index        int     `json:"index"`
}

// Complete reports whether the model stopped on its own.
// A missing or empty finish reason counts as complete.
func (c *Choice) Complete() bool {
	return c.FinishReason == nil || *c.FinishReason == "" || *c.FinishReason == "stop"
}

// ChatResponse represents the API response
type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Usage   Usage    `json:"usage"`
	Choices []Choice `json:"choices"`
}

// GetContent returns the first choice's message content
func (r *ChatResponse) GetContent() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// NewPrompt builds the two-message conversation sent for a task
func NewPrompt(systemPrompt, task string) []Message {
	return []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: task},
	}
}

// CacheKey serializes messages into the response cache key
func CacheKey(messages []Message) (string, error) {
	data, err := marshalRaw(messages)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// marshalRaw encodes v as compact JSON without escaping <, > and &, so
// shell redirects and && appear in cache keys exactly as typed
func marshalRaw(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
