package api

import (
	"log/slog"

	"batepapo/services"

	"github.com/go-chi/chi/v5"
)

// Handler holds the dependencies shared by every route.
type Handler struct {
	log      *slog.Logger
	presence services.IPresenceService
	messages services.IMessageService
}

func NewHandler(log *slog.Logger, presence services.IPresenceService, messages services.IMessageService) *Handler {
	return &Handler{log: log, presence: presence, messages: messages}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/participants", h.handleListParticipants)
	r.Post("/participants", h.handleRegister)
	r.Post("/status", h.handleHeartbeat)
	r.Get("/messages", h.handleListMessages)
	r.Post("/messages", h.handlePostMessage)
}
