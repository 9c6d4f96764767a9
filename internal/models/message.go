package models

import (
	"time"
)

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message represents a single record in a session's conversation history.
// Messages are immutable once created.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

// Role maps the sender onto the role expected by the model API.
// Anything that is not a user message (greeting, replies, fallbacks) is an assistant turn.
func (m Message) Role() string {
	if m.Sender == SenderUser {
		return "user"
	}
	return "assistant"
}

// IconRef names the icon a front-end should render next to a step.
type IconRef string

const (
	IconDocumentText IconRef = "document-text"
	IconCodeBracket  IconRef = "code-bracket"
	IconLightBulb    IconRef = "light-bulb"
)

// Step is a display-only fragment of an assistant reply.
type Step struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Icon    IconRef `json:"icon"`
}
