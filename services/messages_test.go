package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"batepapo/domain"
	"batepapo/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func newBackedMessages(t *testing.T) (*MessageService, repositories.MessageRepository) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	messageRepository := repositories.NewMessageRepository(db, slog.Default(), nil)
	return NewMessageService(messageRepository), messageRepository
}

func Test_Post_Assigns_Server_Time(t *testing.T) {
	req := require.New(t)
	service, messageRepository := newBackedMessages(t)

	fixed := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
	service.clock = func() time.Time { return fixed }

	req.NoError(service.Post(context.Background(), "alice", domain.Broadcast, "hello", domain.KindMessage))

	fromAlice, err := messageRepository.BySender("alice")
	req.NoError(err)
	req.Len(fromAlice, 1)
	req.Equal(fixed, fromAlice[0].At)
	req.NotEqual("00000000-0000-0000-0000-000000000000", fromAlice[0].ID.String())
}

func Test_Concurrent_Posts_All_Recorded(t *testing.T) {
	req := require.New(t)
	service, _ := newBackedMessages(t)

	const senders = 20
	var wg sync.WaitGroup
	errs := make(chan error, senders)
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from := fmt.Sprintf("sender%c", 'a'+rune(i))
			errs <- service.Post(context.Background(), from, domain.Broadcast, "hi", domain.KindMessage)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		req.NoError(err)
	}

	// Broadcasts are visible to anyone
	visible, err := service.VisibleTo(context.Background(), "observer")
	req.NoError(err)
	req.Len(visible, senders)
	for i := 1; i < len(visible); i++ {
		req.False(visible[i].At.Before(visible[i-1].At))
	}
}

func Test_BySender_Ignores_Other_Authors(t *testing.T) {
	req := require.New(t)
	service, _ := newBackedMessages(t)

	req.NoError(service.Post(context.Background(), "alice", domain.Broadcast, "mine", domain.KindMessage))
	req.NoError(service.Post(context.Background(), "bob", "alice", "for alice", domain.KindPrivate))

	// Observed semantics: the sender filter hides even messages addressed
	// to the caller.
	fromAlice, err := service.BySender(context.Background(), "alice")
	req.NoError(err)
	req.Len(fromAlice, 1)
	req.Equal("mine", fromAlice[0].Text)

	visible, err := service.VisibleTo(context.Background(), "alice")
	req.NoError(err)
	req.Len(visible, 2)
}
