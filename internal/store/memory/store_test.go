package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claudechat-backend/internal/conversation"
	"claudechat-backend/internal/models"
	"claudechat-backend/internal/store"
)

func TestCreateAndGetSession(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	conv, err := s.CreateSession(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, conv.Len())

	got, err := s.GetSession(ctx, conv.ID())
	require.NoError(t, err)
	assert.Same(t, conv, got)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a, err := s.CreateSession(ctx)
	require.NoError(t, err)
	b, err := s.CreateSession(ctx)
	require.NoError(t, err)
	require.NotEqual(t, a.ID(), b.ID())

	a.Append("only in a", models.SenderUser)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestGetSession_NotFound(t *testing.T) {
	_, err := NewMemoryStore().GetSession(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	conv, err := s.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, s.DeleteSession(ctx, conv.ID()))
	_, err = s.GetSession(ctx, conv.ID())
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteSession(ctx, conv.ID()), store.ErrNotFound)
}

func TestEvictIdle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(conversation.WithClock(func() time.Time { return now }))

	idle, err := s.CreateSession(ctx)
	require.NoError(t, err)
	busy, err := s.CreateSession(ctx)
	require.NoError(t, err)
	require.True(t, busy.TryBeginTurn())

	now = now.Add(time.Hour)
	fresh, err := s.CreateSession(ctx)
	require.NoError(t, err)

	removed, err := s.EvictIdle(ctx, now.Add(-30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = s.GetSession(ctx, idle.ID())
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetSession(ctx, busy.ID())
	assert.NoError(t, err, "sessions with a pending turn are kept")
	_, err = s.GetSession(ctx, fresh.ID())
	assert.NoError(t, err)
}

func TestCreateSession_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryStore().CreateSession(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
