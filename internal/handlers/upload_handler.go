package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/peenly/backend/internal/middleware"
	"github.com/peenly/backend/internal/models"
	"github.com/peenly/backend/internal/services"
)

type UploadHandler struct {
	upstream  *services.UpstreamClient
	maxSizeMB int64
}

func NewUploadHandler(upstream *services.UpstreamClient, maxSizeMB int64) *UploadHandler {
	return &UploadHandler{upstream: upstream, maxSizeMB: maxSizeMB}
}

// Upload forwards a multipart file plus phone number to the upstream
// upload endpoint, carrying the caller's bearer token along.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSizeMB*1024*1024)

	if err := r.ParseMultipartForm(h.maxSizeMB * 1024 * 1024); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("File too large or invalid form data"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("No file provided"))
		return
	}
	defer file.Close()

	phoneNumber := r.FormValue("phoneNumber")
	token := middleware.GetToken(r.Context())

	result, err := h.upstream.UploadFile(r.Context(), token, phoneNumber, header.Filename, file)
	if err != nil {
		if errors.Is(err, services.ErrMissingBaseURL) {
			writeJSON(w, http.StatusServiceUnavailable, models.NewErrorResponse("Upload backend is not configured"))
			return
		}
		log.Printf("[Upload] forward failed: %v", err)
		writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Failed to upload file"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}
