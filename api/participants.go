package api

import (
	"encoding/json"
	"net/http"

	"batepapo/domain"
	"batepapo/errors"
	"batepapo/validation"

	"github.com/samber/lo"
)

type participantResponse struct {
	Name       string `json:"name"`
	LastStatus int64  `json:"lastStatus"`
}

// handleListParticipants GET /participants: snapshot of the registry.
func (h *Handler) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.presence.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	out := lo.Map(participants, func(p domain.Participant, _ int) participantResponse {
		return participantResponse{Name: p.Name, LastStatus: p.LastHeartbeat.UnixMilli()}
	})
	if out == nil {
		out = []participantResponse{}
	}
	h.respondJSON(w, http.StatusOK, out)
}

// handleRegister POST /participants: validates the payload, then registers
// the name. lastStatus in the body is ignored; the heartbeat clock is always
// server-assigned.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req validation.ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusUnprocessableEntity, []string{errors.ErrInvalidPayload.Error()})
		return
	}
	if violations := validation.Participant(req); len(violations) > 0 {
		h.respondJSON(w, http.StatusUnprocessableEntity, violations)
		return
	}

	if err := h.presence.Register(r.Context(), req.Name); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
