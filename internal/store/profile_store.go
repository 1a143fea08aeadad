package store

import (
	"log"
	"sync"

	"github.com/peenly/backend/internal/models"
	"github.com/peenly/backend/internal/storage"
)

// profileState is the persisted snapshot of the guardian's session: the
// opaque auth token ("" = unauthenticated) and the profile itself.
type profileState struct {
	Token   string         `json:"token"`
	Profile models.Profile `json:"profile"`
}

// ProfileStore holds the authenticated guardian's profile and token.
type ProfileStore struct {
	mu    sync.RWMutex
	hyd   hydration
	snap  storage.Snapshotter
	state profileState
}

// NewProfileStore restores the snapshot and marks the store hydrated. A
// corrupt snapshot falls back to the empty defaults but still hydrates,
// so dependent callers never wait forever.
func NewProfileStore(snap storage.Snapshotter) *ProfileStore {
	s := &ProfileStore{snap: snap}

	var restored profileState
	if err := snap.Load(&restored); err != nil {
		log.Printf("[ProfileStore] restore failed, falling back to defaults: %v", err)
	} else {
		s.state = restored
	}
	s.hyd.set(true)

	return s
}

// SetToken replaces the stored token unconditionally.
func (s *ProfileStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Token = token
	s.persistLocked()
}

// SetProfile shallow-merges the update into the profile. Fields absent
// from the update keep their prior value.
func (s *ProfileStore) SetProfile(update models.ProfileUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	update.Apply(&s.state.Profile)
	s.persistLocked()
}

// ResetParentState clears the token, the profile, and the hydration flag.
// Used for logout.
func (s *ProfileStore) ResetParentState() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = profileState{}
	s.hyd.hydrated = false
	s.persistLocked()
}

// IsProfileCompleted evaluates the completeness invariant against the
// current profile without mutating anything.
func (s *ProfileStore) IsProfileCompleted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Profile.IsComplete()
}

// Token returns the current auth token.
func (s *ProfileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Token
}

// Profile returns a copy of the current profile.
func (s *ProfileStore) Profile() models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Profile
}

// SetHasHydrated sets the hydration flag, forcing a "ready" state when no
// prior snapshot exists.
func (s *ProfileStore) SetHasHydrated(flag bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hyd.set(flag)
}

// HasHydrated reports whether the restore attempt has completed.
func (s *ProfileStore) HasHydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.hyd.isHydrated()
}

// OnHydrated runs fn once hydration completes (immediately if it already
// has).
func (s *ProfileStore) OnHydrated(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hyd.onHydrated(fn)
}

// persistLocked writes the snapshot through. Failures are logged and
// swallowed: persistence is fire-and-forget, mutators never roll back.
func (s *ProfileStore) persistLocked() {
	if err := s.snap.Save(s.state); err != nil {
		log.Printf("[ProfileStore] persist failed: %v", err)
	}
}
