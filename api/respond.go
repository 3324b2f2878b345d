package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"batepapo/errors"
)

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}

// respondServiceError maps domain sentinels to status codes. Storage
// failures stay opaque: the backend detail is logged, never sent.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case stderrors.Is(err, errors.ErrParticipantExists):
		h.respondJSON(w, http.StatusConflict, map[string]string{"error": "User already exists"})
	case stderrors.Is(err, errors.ErrParticipantNotFound):
		h.respondJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
	default:
		h.log.Error("Storage failure", "error", err)
		h.respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
