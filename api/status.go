package api

import "net/http"

// handleHeartbeat POST /status: refreshes the staleness clock of the
// participant named by the user header. Unknown names are never re-created.
func (h *Handler) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	name := r.Header.Get("user")
	if err := h.presence.Heartbeat(r.Context(), name); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
