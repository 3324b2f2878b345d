package services

import (
	"context"
	"time"

	"batepapo/domain"
	"batepapo/errors"
	"batepapo/repositories"

	"github.com/google/uuid"
)

type IMessageService interface {
	Post(ctx context.Context, from, to, text string, kind domain.MessageKind) error
	BySender(ctx context.Context, name string) ([]domain.Message, error)
	VisibleTo(ctx context.Context, name string) ([]domain.Message, error)
}

// MessageService fronts the append-only message log. It is the single place
// where message IDs and timestamps are assigned; clients never supply them.
type MessageService struct {
	messages repositories.IMessageRepository
	clock    func() time.Time
}

func NewMessageService(messages repositories.IMessageRepository) *MessageService {
	return &MessageService{messages: messages, clock: time.Now}
}

// Post appends a pre-validated message with a server-assigned ID and time.
func (s *MessageService) Post(ctx context.Context, from, to, text string, kind domain.MessageKind) error {
	if err := ctx.Err(); err != nil {
		return errors.ErrStorageUnavailable
	}
	return s.messages.Append(domain.Message{
		ID:   uuid.New(),
		From: from,
		To:   to,
		Text: text,
		Kind: kind,
		At:   s.clock().UTC(),
	})
}

// BySender returns the messages authored by name, the observed semantics of
// GET /messages.
func (s *MessageService) BySender(ctx context.Context, name string) ([]domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrStorageUnavailable
	}
	return s.messages.BySender(name)
}

// VisibleTo returns name's timeline: broadcasts, private messages addressed
// to them, and messages they authored.
func (s *MessageService) VisibleTo(ctx context.Context, name string) ([]domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrStorageUnavailable
	}
	return s.messages.VisibleTo(name)
}
