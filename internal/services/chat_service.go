package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"claudechat-backend/internal/auth"
	"claudechat-backend/internal/conversation"
	"claudechat-backend/internal/gateway"
	"claudechat-backend/internal/models"
	"claudechat-backend/internal/steps"
	"claudechat-backend/internal/store"
)

// FallbackText is recorded as the assistant reply whenever the gateway fails.
const FallbackText = "Sorry, there was an error processing your request. Please try again."

// ErrTurnInProgress is returned when a session already has a pending turn.
var ErrTurnInProgress = errors.New("a message is already being processed for this session")

// ChatService handles the page-session chat flow.
type ChatService struct {
	store           store.Store
	gateway         gateway.ResponseGateway
	jwtSecret       string
	tokenExpiration time.Duration
}

// NewChatService creates a new ChatService.
func NewChatService(store store.Store, gw gateway.ResponseGateway, jwtSecret string, tokenExpiration time.Duration) *ChatService {
	return &ChatService{
		store:           store,
		gateway:         gw,
		jwtSecret:       jwtSecret,
		tokenExpiration: tokenExpiration,
	}
}

// CreateSession opens a new page session and issues its access token.
func (s *ChatService) CreateSession(ctx context.Context) (*models.CreateSessionResponse, error) {
	conv, err := s.store.CreateSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create session in store: %w", err)
	}

	token, err := auth.NewSessionToken(conv.ID(), s.jwtSecret, s.tokenExpiration)
	if err != nil {
		// Don't leave an unreachable session behind.
		_ = s.store.DeleteSession(ctx, conv.ID())
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	log.Info().Str("session_id", conv.ID().String()).Msg("session opened")
	return &models.CreateSessionResponse{
		AccessToken: token,
		Session:     conv.Snapshot(),
	}, nil
}

// GetSession returns the read-only view of a session.
func (s *ChatService) GetSession(ctx context.Context, sessionID uuid.UUID) (*models.SessionResponse, error) {
	conv, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get session from store: %w", err)
	}
	view := conv.Snapshot()
	return &view, nil
}

// GetSteps returns the steps derived from the latest successful reply.
func (s *ChatService) GetSteps(ctx context.Context, sessionID uuid.UUID) (*models.StepsResponse, error) {
	conv, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get session from store: %w", err)
	}
	return &models.StepsResponse{Steps: conv.Steps()}, nil
}

// CloseSession drops a session and its whole history.
func (s *ChatService) CloseSession(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	log.Info().Str("session_id", sessionID.String()).Msg("session closed")
	return nil
}

// SendMessage runs one turn: append the user record, call the gateway with the
// full history, then append the reply or the fallback text.
//
// Blank input is a no-op. A second call while a turn is pending returns
// ErrTurnInProgress without touching the history or the gateway.
// Once issued, the gateway call is not canceled by ctx.
func (s *ChatService) SendMessage(ctx context.Context, sessionID uuid.UUID, text string) (*models.SessionResponse, error) {
	conv, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get session from store: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		view := conv.Snapshot()
		return &view, nil
	}

	if !conv.TryBeginTurn() {
		return nil, ErrTurnInProgress
	}
	s.runTurn(ctx, conv, text)

	view := conv.Snapshot()
	return &view, nil
}

// runTurn must only be called after a successful TryBeginTurn.
func (s *ChatService) runTurn(ctx context.Context, conv *conversation.Conversation, text string) {
	defer conv.EndTurn()

	history := conv.Append(text, models.SenderUser)

	reply, err := s.gateway.Send(context.WithoutCancel(ctx), history)
	if err != nil {
		log.Warn().Err(err).Str("session_id", conv.ID().String()).Msg("gateway failed, recording fallback reply")
		conv.Append(FallbackText, models.SenderAI)
		return
	}
	conv.ReplaceSteps(steps.Parse(reply))
	conv.Append(reply, models.SenderAI)
}
