package models

import (
	"github.com/google/uuid"
)

// --- Request Structs ---

// SendMessageRequest defines the body for submitting a user turn.
type SendMessageRequest struct {
	Message string `json:"message"`
}

// --- Response Structs ---

// SessionResponse is the read-only view of a page session.
// Messages are in insertion order, which is display order.
type SessionResponse struct {
	ID       uuid.UUID `json:"id"`
	Messages []Message `json:"messages"`
	Steps    []Step    `json:"steps"`
	Loading  bool      `json:"loading"`
}

// CreateSessionResponse is returned when a new page session is opened.
// The access token must be presented on every request for this session.
type CreateSessionResponse struct {
	AccessToken string          `json:"access_token"`
	Session     SessionResponse `json:"session"`
}

// StepsResponse wraps the steps derived from the latest successful reply.
type StepsResponse struct {
	Steps []Step `json:"steps"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
