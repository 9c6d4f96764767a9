package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"claudechat-backend/internal/auth"
)

var errNoSession = errors.New("session not found in context")

// sessionIDFromRequest returns the session the request was authenticated for.
func sessionIDFromRequest(r *http.Request) (uuid.UUID, error) {
	sessionID, ok := auth.GetSessionIDFromContext(r.Context())
	if !ok || sessionID == uuid.Nil {
		return uuid.Nil, errNoSession
	}
	return sessionID, nil
}
