package llm

import (
	"context"
)

// LLM is a chat-completion model
type LLM interface {
	// Chat generates a single non-streamed reply to the conversation history
	Chat(ctx context.Context, messages []Message, opts ...Option) (Response, error)
}

// Response contains the model's reply and token usage
type Response struct {
	Message Message
	Usage   Usage
}

// Client is an LLM with a fixed set of default options applied to every call
type Client struct {
	llm      LLM
	defaults []Option
}

// NewClient creates a new LLM client
func NewClient(llm LLM, defaults ...Option) *Client {
	return &Client{llm: llm, defaults: defaults}
}

// Chat generates a response based on the conversation history.
// Per-call options are applied after the client defaults.
func (c *Client) Chat(ctx context.Context, messages []Message, opts ...Option) (Response, error) {
	all := make([]Option, 0, len(c.defaults)+len(opts))
	all = append(all, c.defaults...)
	all = append(all, opts...)
	return c.llm.Chat(ctx, messages, all...)
}
