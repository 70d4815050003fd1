package travelinfra

import (
	"context"
	"sync"

	"github.com/Abraxas-365/traveldocs/pkg/travel"
)

// MemoryConversationStore keeps conversations in a process-local map.
// Nothing is evicted and nothing survives a restart.
type MemoryConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*travel.Conversation
}

// NewMemoryConversationStore creates a store, optionally pre-populated
func NewMemoryConversationStore(seed ...*travel.Conversation) *MemoryConversationStore {
	s := &MemoryConversationStore{
		conversations: make(map[string]*travel.Conversation, len(seed)),
	}
	for _, c := range seed {
		s.conversations[c.ID] = c
	}
	return s
}

func (s *MemoryConversationStore) GetOrCreate(ctx context.Context, id string) (*travel.Conversation, error) {
	s.mu.RLock()
	conv, ok := s.conversations[id]
	s.mu.RUnlock()
	if ok {
		return conv, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// another request may have created it between the two locks
	if conv, ok := s.conversations[id]; ok {
		return conv, nil
	}

	conv = travel.NewConversation(id)
	s.conversations[id] = conv
	return conv, nil
}

func (s *MemoryConversationStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}
