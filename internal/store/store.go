package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"claudechat-backend/internal/conversation"
)

// ErrNotFound is returned when a session does not exist (never opened, closed or evicted).
var ErrNotFound = errors.New("record not found")

// Store defines the registry of live page sessions.
// Each session owns its own isolated conversation; nothing is shared between sessions.
type Store interface {
	// CreateSession registers a new conversation seeded with the greeting.
	CreateSession(ctx context.Context) (*conversation.Conversation, error)
	// GetSession returns the conversation for id or ErrNotFound.
	GetSession(ctx context.Context, id uuid.UUID) (*conversation.Conversation, error)
	// DeleteSession drops the whole conversation. Returns ErrNotFound if absent.
	DeleteSession(ctx context.Context, id uuid.UUID) error
	// EvictIdle removes sessions idle since before cutoff that have no pending turn.
	// It returns the number of sessions removed.
	EvictIdle(ctx context.Context, cutoff time.Time) (int, error)
	// Count returns the number of live sessions.
	Count(ctx context.Context) (int, error)
}
