package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/service"
	"driveshare-backend/internal/storage"
)

type EvidenceHandler struct {
	evidence service.EvidenceService
	store    storage.StorageInterface
}

func NewEvidenceHandler(evidence service.EvidenceService, store storage.StorageInterface) *EvidenceHandler {
	return &EvidenceHandler{evidence: evidence, store: store}
}

type uploadURLRequest struct {
	BookingID   int64  `json:"booking_id"`
	Angle       string `json:"angle"`
	ContentType string `json:"content_type"`
}

type uploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}

func (h *EvidenceHandler) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}
	uploadURL, key, err := h.evidence.GetUploadURL(r.Context(), userID(r), req.BookingID, req.Angle, req.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadURLResponse{UploadURL: uploadURL, Key: key})
}

// Upload receives the photo bytes for a mock presigned URL. Cloud storage
// backends take the upload directly and never hit this handler.
func (h *EvidenceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, fmt.Errorf("%w: key is required", domain.ErrValidation))
		return
	}
	defer r.Body.Close()
	if err := h.store.SaveFile(key, r.Body); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key})
}

func (h *EvidenceHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, fmt.Errorf("%w: key is required", domain.ErrValidation))
		return
	}
	file, err := h.store.ReadFile(key)
	if err != nil {
		writeError(w, fmt.Errorf("file %s: %w", key, domain.ErrNotFound))
		return
	}
	defer file.Close()
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = io.Copy(w, file)
}
