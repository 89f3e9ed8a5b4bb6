package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("encoding response", "error", err)
		}
	}
}

// writeError maps domain errors onto HTTP statuses. Conflicts cover every
// lost race and state-machine violation; payment rejections get 402 so
// clients can distinguish them from their own bad input.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidDestination):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrVerificationFailed):
		status = http.StatusPaymentRequired
	case errors.Is(err, domain.ErrOTPMismatch):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAlreadyUsed),
		errors.Is(err, domain.ErrAlreadyClaimed),
		errors.Is(err, domain.ErrSlotUnavailable):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrGateway), errors.Is(err, domain.ErrUploadFailed):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
