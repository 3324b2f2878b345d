package services

import (
	"context"
	"log/slog"
	"time"

	"batepapo/domain"
	"batepapo/errors"
	"batepapo/repositories"
)

type IPresenceService interface {
	Register(ctx context.Context, name string) error
	Heartbeat(ctx context.Context, name string) error
	List(ctx context.Context) ([]domain.Participant, error)
}

// PresenceService owns the participant lifecycle: registration with its
// synthetic entry event, heartbeat refresh, and snapshot reads.
type PresenceService struct {
	participants repositories.IParticipantRepository
	messages     repositories.IMessageRepository
	log          *slog.Logger
	clock        func() time.Time
}

func NewPresenceService(
	participants repositories.IParticipantRepository,
	messages repositories.IMessageRepository,
	log *slog.Logger,
) *PresenceService {
	return &PresenceService{
		participants: participants,
		messages:     messages,
		log:          log,
		clock:        time.Now,
	}
}

// Register creates the participant and appends the "entered the room"
// status event as one logical unit. If the append fails, the freshly
// created participant is removed again so no registration is observable
// without its entry event.
func (s *PresenceService) Register(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return errors.ErrStorageUnavailable
	}
	now := s.clock().UTC()

	if err := s.participants.Create(domain.Participant{Name: name, LastHeartbeat: now}); err != nil {
		return err
	}

	if err := s.messages.Append(domain.NewEntryEvent(name, now)); err != nil {
		if rollbackErr := s.participants.Remove(name); rollbackErr != nil {
			s.log.Error("Failed to roll back registration", "name", name, "error", rollbackErr)
		}
		return err
	}
	return nil
}

// Heartbeat refreshes the staleness clock of an existing participant.
// An unknown name fails with ErrParticipantNotFound; it is never re-created.
func (s *PresenceService) Heartbeat(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return errors.ErrStorageUnavailable
	}
	return s.participants.Refresh(name, s.clock().UTC())
}

// List returns a snapshot of the registry, with no side effects.
func (s *PresenceService) List(ctx context.Context) ([]domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrStorageUnavailable
	}
	return s.participants.List()
}
