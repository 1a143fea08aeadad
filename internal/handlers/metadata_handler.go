package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peenly/backend/internal/services"
)

// MetadataHandler serves page-metadata titles for guardian and tutor
// profile pages. These endpoints always succeed: a failed upstream lookup
// degrades to a placeholder title so profile pages render regardless.
type MetadataHandler struct {
	upstream *services.UpstreamClient
}

func NewMetadataHandler(upstream *services.UpstreamClient) *MetadataHandler {
	return &MetadataHandler{upstream: upstream}
}

func (h *MetadataHandler) GuardianMetadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "guardianId")
	title := h.upstream.GuardianDisplayName(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]string{"title": title})
}

func (h *MetadataHandler) TutorMetadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tutorId")
	title := h.upstream.TutorDisplayName(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]string{"title": title})
}
