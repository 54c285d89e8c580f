package api

import "context"

// FixedClient answers every request with the same canned response.
// It is used by --debug to exercise the CLI without an API key.
type FixedClient struct {
	response ChatResponse
}

// NewFixedClient creates a client returning the canned debug response
func NewFixedClient() *FixedClient {
	stop := "stop"
	return &FixedClient{
		response: ChatResponse{
			ID:      "chatcmpl-6taJ9NwJAFdKNafz0Y49j5ga0jFiF",
			Object:  "chat.completion",
			Created: 1678705627,
			Model:   "gpt-4o",
			Usage: Usage{
				PromptTokens:     45,
				CompletionTokens: 3,
				TotalTokens:      48,
			},
			Choices: []Choice{{
				Message:      Message{Role: RoleAssistant, Content: "npx ncu -i"},
				FinishReason: &stop,
				Index:        0,
			}},
		},
	}
}

// Ask returns a copy of the canned response regardless of messages
func (c *FixedClient) Ask(ctx context.Context, messages []Message) (*ChatResponse, error) {
	resp := c.response
	resp.Choices = append([]Choice(nil), c.response.Choices...)
	return &resp, nil
}
