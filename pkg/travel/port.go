package travel

import (
	"context"

	"github.com/Abraxas-365/traveldocs/pkg/ai/llm"
)

// ConversationStore owns every Conversation
type ConversationStore interface {
	// GetOrCreate returns the conversation for id, creating it on first use
	GetOrCreate(ctx context.Context, id string) (*Conversation, error)

	// Count returns the number of known conversations
	Count() int
}

// Gateway asks the model for travel requirements given the full history
type Gateway interface {
	Complete(ctx context.Context, messages []llm.Message) (*Requirements, error)
}
