package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"batepapo/domain"
	"batepapo/errors"
	"batepapo/mocks"
	"batepapo/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newBackedSweeper(t *testing.T) (*Sweeper, *repositories.ParticipantRepository, repositories.MessageRepository) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	participantRepository := repositories.NewParticipantRepository(db)
	messageRepository := repositories.NewMessageRepository(db, slog.Default(), nil)
	sweeper := NewSweeper(slog.Default(), participantRepository, messageRepository, 15*time.Second, 10*time.Second)
	return sweeper, participantRepository, messageRepository
}

func Test_Sweep_Evicts_Stale_Participant(t *testing.T) {
	req := require.New(t)
	sweeper, participantRepository, messageRepository := newBackedSweeper(t)

	// bob registered and never heartbeat; simulated clock is past the timeout
	registered := time.Now().UTC().Add(-time.Minute)
	req.NoError(participantRepository.Create(domain.Participant{Name: "bob", LastHeartbeat: registered}))

	sweeper.sweep(context.Background())

	participants, err := participantRepository.List()
	req.NoError(err)
	req.Empty(participants)

	fromBob, err := messageRepository.BySender("bob")
	req.NoError(err)
	req.Len(fromBob, 1)
	req.Equal(domain.KindStatus, fromBob[0].Kind)
	req.Equal("bob left the room", fromBob[0].Text)
	req.Equal(domain.Broadcast, fromBob[0].To)
}

func Test_Sweep_Keeps_Fresh_Participant(t *testing.T) {
	req := require.New(t)
	sweeper, participantRepository, messageRepository := newBackedSweeper(t)

	req.NoError(participantRepository.Create(domain.Participant{Name: "alice", LastHeartbeat: time.Now().UTC()}))

	sweeper.sweep(context.Background())

	participants, err := participantRepository.List()
	req.NoError(err)
	req.Len(participants, 1)

	fromAlice, err := messageRepository.BySender("alice")
	req.NoError(err)
	req.Empty(fromAlice)
}

func Test_Sweep_Survives_Heartbeat_During_Window(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	participantMock := mocks.NewMockIParticipantRepository(ctrl)
	messageMock := mocks.NewMockIMessageRepository(ctrl)

	// The snapshot says bob is stale, but a heartbeat lands before the
	// delete: the conditional delete reports no eviction, and no departure
	// event may be appended.
	stale := domain.Participant{Name: "bob", LastHeartbeat: time.Now().UTC().Add(-time.Minute)}
	participantMock.EXPECT().List().Return([]domain.Participant{stale}, nil)
	participantMock.EXPECT().
		DeleteIfStaleBefore("bob", gomock.Any()).
		Return(false, nil)

	sweeper := NewSweeper(slog.Default(), participantMock, messageMock, 15*time.Second, 10*time.Second)
	sweeper.sweep(context.Background())
}

func Test_Sweep_Continues_After_Eviction_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	participantMock := mocks.NewMockIParticipantRepository(ctrl)
	messageMock := mocks.NewMockIMessageRepository(ctrl)

	old := time.Now().UTC().Add(-time.Minute)
	participantMock.EXPECT().List().Return([]domain.Participant{
		{Name: "bob", LastHeartbeat: old},
		{Name: "carol", LastHeartbeat: old},
	}, nil)
	// bob's eviction fails; carol's must still run
	participantMock.EXPECT().
		DeleteIfStaleBefore("bob", gomock.Any()).
		Return(false, errors.ErrStorageUnavailable)
	participantMock.EXPECT().
		DeleteIfStaleBefore("carol", gomock.Any()).
		Return(true, nil)
	messageMock.EXPECT().
		Append(gomock.Any()).
		DoAndReturn(func(m domain.Message) error {
			require.Equal(t, "carol", m.From)
			require.Equal(t, domain.KindStatus, m.Kind)
			return nil
		})

	sweeper := NewSweeper(slog.Default(), participantMock, messageMock, 15*time.Second, 10*time.Second)
	sweeper.sweep(context.Background())
}

func Test_Sweep_Skips_While_Previous_Run_Active(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No List expectation: any registry access would fail the test
	participantMock := mocks.NewMockIParticipantRepository(ctrl)
	messageMock := mocks.NewMockIMessageRepository(ctrl)

	sweeper := NewSweeper(slog.Default(), participantMock, messageMock, 15*time.Second, 10*time.Second)
	sweeper.running.Store(true)
	sweeper.sweep(context.Background())
}

func Test_Sweeper_Run_Stops_On_Cancel(t *testing.T) {
	req := require.New(t)
	sweeper, _, _ := newBackedSweeper(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}
