package travel

import (
	"context"
	"time"

	"github.com/Abraxas-365/traveldocs/pkg/ai/llm"
	"github.com/Abraxas-365/traveldocs/pkg/ai/llm/memoryx"
)

// Conversation is the per-identifier message history sent to the model on
// every turn. It lives only as long as the process.
type Conversation struct {
	ID        string
	CreatedAt time.Time

	memory memoryx.Memory
	active bool

	// turn holds a token while a turn is in flight
	turn chan struct{}
}

// ConversationOption configures a Conversation at construction
type ConversationOption func(*Conversation)

// WithActive sets the initial active flag. Nothing changes it afterwards.
func WithActive(active bool) ConversationOption {
	return func(c *Conversation) {
		c.active = active
	}
}

// NewConversation creates an active conversation seeded with SystemPrompt
func NewConversation(id string, opts ...ConversationOption) *Conversation {
	c := &Conversation{
		ID:        id,
		CreatedAt: time.Now(),
		memory:    memoryx.NewBufferMemory(SystemPrompt),
		active:    true,
		turn:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsActive reports whether the conversation still accepts turns
func (c *Conversation) IsActive() bool {
	return c.active
}

// Acquire waits until no other turn is in flight on this conversation.
// It returns ctx.Err() if ctx is done first.
func (c *Conversation) Acquire(ctx context.Context) error {
	select {
	case c.turn <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release ends the turn started by Acquire
func (c *Conversation) Release() {
	<-c.turn
}

// Messages returns a copy of the history, system prompt first
func (c *Conversation) Messages() ([]llm.Message, error) {
	return c.memory.Messages()
}

// Len returns the number of messages in the history
func (c *Conversation) Len() int {
	return c.memory.Len()
}

func (c *Conversation) AppendUser(content string) error {
	return c.memory.Add(llm.NewUserMessage(content))
}

func (c *Conversation) AppendAssistant(content string) error {
	return c.memory.Add(llm.NewAssistantMessage(content))
}
