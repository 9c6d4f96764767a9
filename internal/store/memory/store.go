package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"claudechat-backend/internal/conversation"
	"claudechat-backend/internal/store"
)

// Compile-time check to ensure MemoryStore implements store.Store
var _ store.Store = (*MemoryStore)(nil)

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*conversation.Conversation
	opts     []conversation.Option
}

// NewMemoryStore creates an empty registry. opts are applied to every new conversation.
func NewMemoryStore(opts ...conversation.Option) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*conversation.Conversation),
		opts:     opts,
	}
}

func (s *MemoryStore) CreateSession(ctx context.Context) (*conversation.Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conv := conversation.New(uuid.New(), s.opts...)

	s.mu.Lock()
	s.sessions[conv.ID()] = conv
	total := len(s.sessions)
	s.mu.Unlock()

	log.Debug().Str("component", "memory_store").Str("session_id", conv.ID().String()).Int("sessions", total).Msg("session created")
	return conv, nil
}

func (s *MemoryStore) GetSession(ctx context.Context, id uuid.UUID) (*conversation.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return conv, nil
}

func (s *MemoryStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.sessions, id)
	log.Debug().Str("component", "memory_store").Str("session_id", id.String()).Msg("session deleted")
	return nil
}

func (s *MemoryStore) EvictIdle(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, conv := range s.sessions {
		if conv.Loading() || !conv.IdleSince().Before(cutoff) {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	return removed, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}
