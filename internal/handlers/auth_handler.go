package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/peenly/backend/internal/services"
)

type AuthHandler struct {
	upstream *services.UpstreamClient
}

func NewAuthHandler(upstream *services.UpstreamClient) *AuthHandler {
	return &AuthHandler{upstream: upstream}
}

// RegisterGuardian forwards the request body verbatim to the upstream
// registration endpoint and relays its status and body unchanged. Any
// local failure produces a fixed 500 body; upstream details never leak.
func (h *AuthHandler) RegisterGuardian(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.internalError(w, err)
		return
	}

	status, respBody, err := h.upstream.RegisterGuardian(r.Context(), body)
	if err != nil {
		h.internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(respBody)
}

func (h *AuthHandler) internalError(w http.ResponseWriter, err error) {
	log.Printf("[RegisterGuardian] proxy error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
}
