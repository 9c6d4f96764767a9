package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"claudechat-backend/internal/models"
	"claudechat-backend/internal/services"
	"claudechat-backend/internal/store"
	"claudechat-backend/pkg/httputil"
)

// maxMessageBytes bounds the request body of a submitted turn.
const maxMessageBytes = 1 << 20

// ChatHandlers handles HTTP requests related to page sessions.
type ChatHandlers struct {
	chatService *services.ChatService
}

// NewChatHandlers creates a new ChatHandlers instance.
func NewChatHandlers(chatService *services.ChatService) *ChatHandlers {
	return &ChatHandlers{
		chatService: chatService,
	}
}

// HandleCreateSession opens a new page session.
func (h *ChatHandlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	created, err := h.chatService.CreateSession(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to create session")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, created)
}

// HandleGetSession returns the history, steps and loading flag of a session.
func (h *ChatHandlers) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := sessionIDFromRequest(r)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	session, err := h.chatService.GetSession(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, session)
}

// HandleSendMessage submits one user turn and responds once the turn has completed.
func (h *ChatHandlers) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID, err := sessionIDFromRequest(r)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageBytes)).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.chatService.SendMessage(r.Context(), sessionID, req.Message)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, session)
}

// HandleGetSteps returns the steps of the latest successful reply.
func (h *ChatHandlers) HandleGetSteps(w http.ResponseWriter, r *http.Request) {
	sessionID, err := sessionIDFromRequest(r)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resp, err := h.chatService.GetSteps(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleCloseSession drops the session.
func (h *ChatHandlers) HandleCloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := sessionIDFromRequest(r)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.chatService.CloseSession(r.Context(), sessionID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChatHandlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, services.ErrTurnInProgress):
		httputil.RespondError(w, http.StatusConflict, "A message is already being processed")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("chat service error")
		httputil.RespondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
