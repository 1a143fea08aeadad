// Package store holds the application state containers backing the
// Peenly client surface: guardian profile, child feed posts, and chat
// conversations. Each store owns its slice of state exclusively, guards
// it with an RWMutex, and writes every mutation through to its
// storage.Snapshotter before returning.
package store

// Store keys match the snapshot slots the web client used, so existing
// exports stay readable across migrations.
const (
	ProfileStoreKey = "parent-store"
	PostStoreKey    = "child-posts-storage"
	MessageStoreKey = "message-store"
)

// hydration tracks whether a store's restore attempt has completed
// (success or fallback). Stores embed it and guard it with their own
// mutex. Callbacks registered before hydration fire once, when the flag
// first turns true.
type hydration struct {
	hydrated  bool
	callbacks []func()
}

func (h *hydration) set(flag bool) {
	wasHydrated := h.hydrated
	h.hydrated = flag
	if flag && !wasHydrated {
		for _, fn := range h.callbacks {
			fn()
		}
		h.callbacks = nil
	}
}

func (h *hydration) isHydrated() bool {
	return h.hydrated
}

// onHydrated registers fn to run once hydration completes; fn runs
// immediately if the store is already hydrated.
func (h *hydration) onHydrated(fn func()) {
	if h.hydrated {
		fn()
		return
	}
	h.callbacks = append(h.callbacks, fn)
}
