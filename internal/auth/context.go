package auth

import (
	"context"

	"github.com/google/uuid"
)

// --- Context Helper Functions ---

// WithSessionID returns a copy of ctx carrying the authenticated session ID.
func WithSessionID(ctx context.Context, sessionID uuid.UUID) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// GetSessionIDFromContext retrieves the authenticated session ID from the request context.
// Returns the ID and true if found, otherwise uuid.Nil and false.
func GetSessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return sessionID, ok
}
