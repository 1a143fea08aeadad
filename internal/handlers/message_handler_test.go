package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peenly/backend/internal/middleware"
	"github.com/peenly/backend/internal/models"
	"github.com/peenly/backend/internal/storage"
	"github.com/peenly/backend/internal/store"
)

func newMessageHandler(t *testing.T) (*MessageHandler, *store.MessageStore, *store.ProfileStore) {
	t.Helper()
	dir := t.TempDir()

	msgSnap, err := storage.NewJSONStore(dir, store.MessageStoreKey)
	require.NoError(t, err)
	profSnap, err := storage.NewJSONStore(dir, store.ProfileStoreKey)
	require.NoError(t, err)

	messages := store.NewMessageStore(msgSnap)
	profiles := store.NewProfileStore(profSnap)
	return NewMessageHandler(messages, profiles), messages, profiles
}

func requestAs(method, target, body, userID string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestInitializeWaitsForProfileHydration(t *testing.T) {
	h, messages, profiles := newMessageHandler(t)

	// Logout clears the hydration flag; initialize must hold off.
	profiles.ResetParentState()

	rec := httptest.NewRecorder()
	h.Initialize(rec, requestAs(http.MethodPost, "/messages/initialize", "", "guardian-1"))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	_, resolved := messages.CurrentUserID()
	assert.False(t, resolved)

	// Once hydrated, the same call resolves the identity.
	profiles.SetHasHydrated(true)
	rec = httptest.NewRecorder()
	h.Initialize(rec, requestAs(http.MethodPost, "/messages/initialize", "", "guardian-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	id, resolved := messages.CurrentUserID()
	assert.True(t, resolved)
	assert.Equal(t, "guardian-1", id)
}

func TestInitializeDoesNotOverwriteResolvedIdentity(t *testing.T) {
	h, messages, _ := newMessageHandler(t)
	messages.InitializeStore("guardian-1")

	rec := httptest.NewRecorder()
	h.Initialize(rec, requestAs(http.MethodPost, "/messages/initialize", "", "guardian-2"))

	assert.Equal(t, http.StatusOK, rec.Code)
	id, _ := messages.CurrentUserID()
	assert.Equal(t, "guardian-1", id)
}

func TestSendRequiresConversationSelection(t *testing.T) {
	h, _, _ := newMessageHandler(t)

	rec := httptest.NewRecorder()
	h.Send(rec, requestAs(http.MethodPost, "/messages/send", `{"text":"hi"}`, "guardian-1"))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSendAppendsToActiveConversation(t *testing.T) {
	h, messages, _ := newMessageHandler(t)
	messages.SetConversations([]models.Conversation{{ID: "c1", Name: "Tutor Ngozi"}})
	messages.InitializeStore("guardian-1")
	messages.SetActiveConversation("c1")

	rec := httptest.NewRecorder()
	h.Send(rec, requestAs(http.MethodPost, "/messages/send", `{"text":"hi"}`, "guardian-1"))

	require.Equal(t, http.StatusCreated, rec.Code)

	msgs := messages.MessagesFor("c1")
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Text)
	assert.Equal(t, "guardian-1", msgs[0].SenderID)
	assert.NotEmpty(t, msgs[0].ID)
	assert.NotZero(t, msgs[0].Timestamp)
	assert.Equal(t, "hi", messages.Conversations()[0].LastMessage)
}
