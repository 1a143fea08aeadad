package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/peenly/backend/internal/middleware"
	"github.com/peenly/backend/internal/models"
	"github.com/peenly/backend/internal/store"
)

type MessageHandler struct {
	messages *store.MessageStore
	profiles *store.ProfileStore
}

func NewMessageHandler(messages *store.MessageStore, profiles *store.ProfileStore) *MessageHandler {
	return &MessageHandler{messages: messages, profiles: profiles}
}

type messageStateView struct {
	Conversations []models.Conversation `json:"conversations"`
	ActiveID      string                `json:"activeConversationId,omitempty"`
	UserID        string                `json:"userId,omitempty"`
	UserResolved  bool                  `json:"userResolved"`
	Hydrated      bool                  `json:"hydrated"`
}

func (h *MessageHandler) GetState(w http.ResponseWriter, r *http.Request) {
	userID, resolved := h.messages.CurrentUserID()
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(messageStateView{
		Conversations: h.messages.Conversations(),
		ActiveID:      h.messages.ActiveConversation(),
		UserID:        userID,
		UserResolved:  resolved,
		Hydrated:      h.messages.HasHydrated(),
	}))
}

// Initialize resolves the messaging identity from the authenticated user.
// Gated on the profile store having hydrated and the identity still being
// unresolved; while the profile is pending the caller gets a 202 and
// should retry.
func (h *MessageHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	if !h.profiles.HasHydrated() {
		writeJSON(w, http.StatusAccepted, models.NewErrorResponse("Profile still hydrating"))
		return
	}
	if _, resolved := h.messages.CurrentUserID(); resolved {
		h.GetState(w, r)
		return
	}

	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	h.messages.InitializeStore(userID)
	h.GetState(w, r)
}

// CreateConversation appends a conversation, assigning an id when the
// caller left it blank.
func (h *MessageHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var conv models.Conversation
	if err := json.NewDecoder(r.Body).Decode(&conv); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}

	h.messages.AddConversation(conv)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(conv))
}

// ReplaceConversations swaps the conversation list wholesale.
func (h *MessageHandler) ReplaceConversations(w http.ResponseWriter, r *http.Request) {
	var convs []models.Conversation
	if err := json.NewDecoder(r.Body).Decode(&convs); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	h.messages.SetConversations(convs)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.messages.Conversations()))
}

// SetActive selects the active conversation. The store accepts any id;
// membership is the caller's responsibility.
func (h *MessageHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	h.messages.SetActiveConversation(req.ID)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"activeConversationId": req.ID}))
}

func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationId")
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.messages.MessagesFor(conversationID)))
}

// Send appends a message to the target conversation (the request's
// conversationId, falling back to the active selection) and stamps it
// with a nanosecond-clock id and a unix-milli timestamp.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConversationID string `json:"conversationId"`
		Text           string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = h.messages.ActiveConversation()
	}
	if conversationID == "" {
		writeJSON(w, http.StatusConflict, models.NewErrorResponse("No conversation selected"))
		return
	}

	senderID, resolved := h.messages.CurrentUserID()
	if !resolved {
		senderID = middleware.GetUserID(r.Context())
	}

	now := time.Now()
	msg := models.Message{
		ID:             strconv.FormatInt(now.UnixNano(), 10),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           req.Text,
		Timestamp:      now.UnixMilli(),
	}

	h.messages.AddMessage(msg)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(msg))
}
