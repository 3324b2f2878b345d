package api

import (
	"encoding/json"
	"net/http"

	"batepapo/domain"
	"batepapo/errors"
	"batepapo/validation"

	"github.com/samber/lo"
)

type messageResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
	Time string `json:"time"`
}

// handleListMessages GET /messages: by default returns the messages
// authored by the user header, reproducing the observed sender filter.
// ?scope=visible switches to the recipient-visibility query instead
// (broadcasts, private messages to the user, and their own).
func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	name := r.Header.Get("user")

	var (
		messages []domain.Message
		err      error
	)
	if r.URL.Query().Get("scope") == "visible" {
		messages, err = h.messages.VisibleTo(r.Context(), name)
	} else {
		messages, err = h.messages.BySender(r.Context(), name)
	}
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	out := lo.Map(messages, func(m domain.Message, _ int) messageResponse {
		return messageResponse{
			From: m.From,
			To:   m.To,
			Text: m.Text,
			Type: string(m.Kind),
			Time: m.At.Format("15:04:05"),
		}
	})
	if out == nil {
		out = []messageResponse{}
	}
	h.respondJSON(w, http.StatusOK, out)
}

// handlePostMessage POST /messages: validates the payload and appends a
// message from the user header. ID and time are assigned server-side.
func (h *Handler) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var req validation.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusUnprocessableEntity, []string{errors.ErrInvalidPayload.Error()})
		return
	}
	if violations := validation.Message(req); len(violations) > 0 {
		h.respondJSON(w, http.StatusUnprocessableEntity, violations)
		return
	}

	from := r.Header.Get("user")
	if err := h.messages.Post(r.Context(), from, req.To, req.Text, domain.MessageKind(req.Type)); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
