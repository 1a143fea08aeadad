package store

import (
	"log"
	"sync"

	"github.com/peenly/backend/internal/models"
	"github.com/peenly/backend/internal/storage"
)

// Identity is the two-state current-user identity: unresolved until
// InitializeStore swaps in the real id after the profile store hydrates.
type Identity struct {
	ID       string `json:"id,omitempty"`
	Resolved bool   `json:"resolved"`
}

type messageState struct {
	Conversations []models.Conversation       `json:"conversations"`
	Messages      map[string][]models.Message `json:"messages"`
	ActiveID      string                      `json:"activeConversationId,omitempty"`
	User          Identity                    `json:"user"`
}

// MessageStore holds conversations, their append-ordered message logs,
// the active conversation selection, and the current-user identity.
type MessageStore struct {
	mu    sync.RWMutex
	hyd   hydration
	snap  storage.Snapshotter
	state messageState
}

// NewMessageStore restores the snapshot and marks the store hydrated,
// falling back to empty defaults on a corrupt snapshot.
func NewMessageStore(snap storage.Snapshotter) *MessageStore {
	s := &MessageStore{snap: snap}

	var restored messageState
	if err := snap.Load(&restored); err != nil {
		log.Printf("[MessageStore] restore failed, falling back to defaults: %v", err)
	} else {
		s.state = restored
	}
	if s.state.Messages == nil {
		s.state.Messages = make(map[string][]models.Message)
	}
	s.hyd.set(true)

	return s
}

// InitializeStore resolves the current-user identity exactly once.
// Calling it again, with the same id or a different one, leaves an
// already-resolved identity untouched.
func (s *MessageStore) InitializeStore(realUserID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User.Resolved {
		return
	}
	s.state.User = Identity{ID: realUserID, Resolved: true}
	s.persistLocked()
}

// SetActiveConversation sets the active selection. The id is not checked
// against the conversation set; callers own that invariant.
func (s *MessageStore) SetActiveConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.ActiveID = id
	s.persistLocked()
}

// AddMessage appends the message to its conversation's log and updates
// that conversation's last-message preview. Other conversations are
// untouched. The caller supplies the id and timestamp.
func (s *MessageStore) AddMessage(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Messages[msg.ConversationID] = append(s.state.Messages[msg.ConversationID], msg)
	for i := range s.state.Conversations {
		if s.state.Conversations[i].ID == msg.ConversationID {
			s.state.Conversations[i].LastMessage = msg.Text
			break
		}
	}
	s.persistLocked()
}

// SetConversations replaces the conversation list wholesale.
func (s *MessageStore) SetConversations(convs []models.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Conversations = append([]models.Conversation(nil), convs...)
	s.persistLocked()
}

// AddConversation appends a conversation to the list.
func (s *MessageStore) AddConversation(conv models.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Conversations = append(s.state.Conversations, conv)
	s.persistLocked()
}

// Conversations returns a copy of the conversation list.
func (s *MessageStore) Conversations() []models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Conversation(nil), s.state.Conversations...)
}

// MessagesFor returns a copy of the message log for one conversation.
func (s *MessageStore) MessagesFor(conversationID string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Message(nil), s.state.Messages[conversationID]...)
}

// ActiveConversation returns the active conversation id, "" when none is
// selected.
func (s *MessageStore) ActiveConversation() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.ActiveID
}

// CurrentUserID returns the resolved user id, or ("", false) while the
// identity is still the unresolved placeholder.
func (s *MessageStore) CurrentUserID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.User.ID, s.state.User.Resolved
}

// HasHydrated reports whether the restore attempt has completed.
func (s *MessageStore) HasHydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.hyd.isHydrated()
}

// OnHydrated runs fn once hydration completes (immediately if it already
// has).
func (s *MessageStore) OnHydrated(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hyd.onHydrated(fn)
}

func (s *MessageStore) persistLocked() {
	if err := s.snap.Save(s.state); err != nil {
		log.Printf("[MessageStore] persist failed: %v", err)
	}
}
