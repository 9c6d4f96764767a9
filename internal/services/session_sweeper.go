package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"claudechat-backend/internal/store"
)

// SessionSweeper evicts page sessions nobody has touched for a while.
type SessionSweeper struct {
	store    store.Store
	idle     time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewSessionSweeper creates a sweeper that runs every interval and evicts sessions idle longer than idle.
func NewSessionSweeper(store store.Store, idle, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		store:    store,
		idle:     idle,
		interval: interval,
		now:      time.Now,
	}
}

// Run blocks until ctx is done.
func (s *SessionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Info().Dur("idle", s.idle).Dur("interval", s.interval).Msg("session sweeper started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce performs a single eviction pass and returns the number of sessions removed.
func (s *SessionSweeper) SweepOnce(ctx context.Context) int {
	removed, err := s.store.EvictIdle(ctx, s.now().Add(-s.idle))
	if err != nil {
		log.Error().Err(err).Msg("session sweep failed")
		return 0
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("evicted idle sessions")
	}
	return removed
}
