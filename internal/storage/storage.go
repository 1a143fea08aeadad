package storage

// Snapshotter persists one store's full state snapshot under a fixed key.
// Load leaves v untouched when no snapshot exists yet; a snapshot that
// exists but cannot be decoded is an error, and callers are expected to
// fall back to their default state.
type Snapshotter interface {
	Load(v interface{}) error
	Save(v interface{}) error
	Exists() bool
}
