package memoryx

import (
	"sync"

	"github.com/Abraxas-365/traveldocs/pkg/ai/llm"
)

// Memory represents a conversation memory with system prompt management
type Memory interface {
	// Messages returns all messages including the system prompt, oldest first
	Messages() ([]llm.Message, error)

	// Add appends a message to memory
	Add(message llm.Message) error

	// Len returns the number of stored messages
	Len() int
}

// BufferMemory keeps the whole history in process memory. It never prunes.
type BufferMemory struct {
	mu       sync.RWMutex
	messages []llm.Message
}

// NewBufferMemory creates a memory seeded with a single system message
func NewBufferMemory(systemPrompt string) *BufferMemory {
	return &BufferMemory{
		messages: []llm.Message{llm.NewSystemMessage(systemPrompt)},
	}
}

// Messages returns a copy of the history
func (m *BufferMemory) Messages() ([]llm.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]llm.Message, len(m.messages))
	copy(out, m.messages)
	return out, nil
}

func (m *BufferMemory) Add(message llm.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, message)
	return nil
}

func (m *BufferMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}
