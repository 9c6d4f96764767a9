// Package conversation holds the in-memory history of a single page session.
//
// A Conversation is append-only: records are never edited, removed or
// reordered. It also carries the session's pending-turn flag and the steps
// derived from the latest successful reply.
package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"claudechat-backend/internal/models"
)

// Greeting is the assistant message every conversation starts with.
const Greeting = "Hello! I'm Claude, an AI assistant created by Anthropic. I'm helpful, honest, and harmless. How can I help you today?"

// Conversation is safe for concurrent use.
type Conversation struct {
	id uuid.UUID

	mu         sync.RWMutex
	messages   []models.Message
	steps      []models.Step
	loading    bool
	lastActive time.Time
	now        func() time.Time
}

// Option customises a Conversation at construction time.
type Option func(*Conversation)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Conversation) {
		c.now = now
	}
}

// New creates a conversation seeded with exactly one assistant greeting.
func New(id uuid.UUID, opts ...Option) *Conversation {
	c := &Conversation{
		id:  id,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.messages = []models.Message{c.newMessage(Greeting, models.SenderAI)}
	c.lastActive = c.now()
	return c
}

// ID returns the session ID this conversation belongs to.
func (c *Conversation) ID() uuid.UUID {
	return c.id
}

// Append adds a new record to the end of the history and returns the updated view.
func (c *Conversation) Append(text string, sender models.Sender) []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, c.newMessage(text, sender))
	c.lastActive = c.now()
	return c.historyLocked()
}

// History returns a copy of the ordered history.
func (c *Conversation) History() []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.historyLocked()
}

// Len returns the number of records in the history.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// TryBeginTurn marks the conversation as loading.
// It returns false without changing anything if a turn is already pending.
func (c *Conversation) TryBeginTurn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return false
	}
	c.loading = true
	c.lastActive = c.now()
	return true
}

// EndTurn clears the loading flag.
func (c *Conversation) EndTurn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.lastActive = c.now()
}

// Loading reports whether a turn is pending.
func (c *Conversation) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// ReplaceSteps discards the current steps and stores the given ones.
func (c *Conversation) ReplaceSteps(steps []models.Step) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = append([]models.Step(nil), steps...)
}

// Steps returns a copy of the current steps.
func (c *Conversation) Steps() []models.Step {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Step{}, c.steps...)
}

// IdleSince returns the last time the conversation was touched.
func (c *Conversation) IdleSince() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastActive
}

// Snapshot returns a consistent view of history, steps and loading flag.
func (c *Conversation) Snapshot() models.SessionResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.SessionResponse{
		ID:       c.id,
		Messages: c.historyLocked(),
		Steps:    append([]models.Step{}, c.steps...),
		Loading:  c.loading,
	}
}

func (c *Conversation) historyLocked() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) newMessage(text string, sender models.Sender) models.Message {
	return models.Message{
		ID:        newMessageID(),
		Text:      text,
		Sender:    sender,
		CreatedAt: c.now(),
	}
}

// newMessageID returns a time-ordered unique ID.
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
