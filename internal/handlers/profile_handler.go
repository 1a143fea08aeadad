package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/peenly/backend/internal/models"
	"github.com/peenly/backend/internal/store"
)

type ProfileHandler struct {
	profiles *store.ProfileStore
}

func NewProfileHandler(profiles *store.ProfileStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileView struct {
	Profile       models.Profile `json:"profile"`
	Completed     bool           `json:"completed"`
	Authenticated bool           `json:"authenticated"`
	Hydrated      bool           `json:"hydrated"`
}

func (h *ProfileHandler) view() profileView {
	return profileView{
		Profile:       h.profiles.Profile(),
		Completed:     h.profiles.IsProfileCompleted(),
		Authenticated: h.profiles.Token() != "",
		Hydrated:      h.profiles.HasHydrated(),
	}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.view()))
}

// UpdateProfile merges a partial edit into the profile. Absent fields are
// untouched.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	h.profiles.SetProfile(update)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.view()))
}

func (h *ProfileHandler) SetToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	h.profiles.SetToken(req.Token)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.view()))
}

// Logout resets the guardian session to its empty defaults.
func (h *ProfileHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.profiles.ResetParentState()
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Logged out"}))
}
