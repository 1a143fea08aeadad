package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/peenly/backend/internal/models"
	"github.com/peenly/backend/internal/store"
)

type PostHandler struct {
	posts *store.PostStore
}

func NewPostHandler(posts *store.PostStore) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.posts.Posts()))
}

// ReplacePosts swaps the whole feed for the given list, used when a
// remote refresh supersedes local state.
func (h *PostHandler) ReplacePosts(w http.ResponseWriter, r *http.Request) {
	var posts []models.Post
	if err := json.NewDecoder(r.Body).Decode(&posts); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	h.posts.SetPosts(posts)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.posts.Posts()))
}

// CreatePost prepends a post to the feed, assigning an id when the
// caller left it blank.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if post.ID == "" {
		post.ID = uuid.New().String()
	}

	h.posts.AddPost(post)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(post))
}

// UpdatePost merges partial fields into the matching post. An unknown id
// is a silent no-op, mirroring the store contract.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	var update models.PostUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	h.posts.UpdatePost(postID, update)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.posts.Posts()))
}

// DeletePost removes the matching post; an unknown id is a silent no-op.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	h.posts.DeletePost(postID)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.posts.Posts()))
}
