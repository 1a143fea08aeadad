package store

import (
	"log"
	"sync"

	"github.com/peenly/backend/internal/models"
	"github.com/peenly/backend/internal/storage"
)

// PostStore holds the child feed, newest-first. It hydrates synchronously
// in its constructor and exposes no hydration flag: feed consumers assume
// the list is available as soon as the store exists.
type PostStore struct {
	mu    sync.RWMutex
	snap  storage.Snapshotter
	posts []models.Post
}

func NewPostStore(snap storage.Snapshotter) *PostStore {
	s := &PostStore{snap: snap}

	var restored []models.Post
	if err := snap.Load(&restored); err != nil {
		log.Printf("[PostStore] restore failed, starting empty: %v", err)
	} else {
		s.posts = restored
	}

	return s
}

// SetPosts replaces the feed wholesale, e.g. after a remote refresh.
func (s *PostStore) SetPosts(posts []models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = append([]models.Post(nil), posts...)
	s.persistLocked()
}

// AddPost prepends the post. The caller supplies a populated post,
// identifier included.
func (s *PostStore) AddPost(post models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = append([]models.Post{post}, s.posts...)
	s.persistLocked()
}

// UpdatePost merges the update into the post matching id. Unknown ids are
// a silent no-op; the relative order of other posts never changes.
func (s *PostStore) UpdatePost(id string, update models.PostUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == id {
			update.Apply(&s.posts[i])
			s.persistLocked()
			return
		}
	}
}

// DeletePost removes the post matching id. Unknown ids are a silent
// no-op.
func (s *PostStore) DeletePost(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// Posts returns a copy of the feed.
func (s *PostStore) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Post(nil), s.posts...)
}

func (s *PostStore) persistLocked() {
	if err := s.snap.Save(s.posts); err != nil {
		log.Printf("[PostStore] persist failed: %v", err)
	}
}
