package repositories

import (
	"log/slog"
	"testing"
	"time"

	"batepapo/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func broadcastFrom(from, text string, at time.Time) domain.Message {
	return domain.Message{
		ID:   uuid.New(),
		From: from,
		To:   domain.Broadcast,
		Text: text,
		Kind: domain.KindMessage,
		At:   at,
	}
}

func Test_Append_And_Query_By_Sender(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(newTestDB(t), slog.Default(), nil)

	at := time.Now().UTC()
	messages := []domain.Message{
		broadcastFrom("alice", "first", at),
		broadcastFrom("bob", "second", at.Add(1*time.Minute)),
		broadcastFrom("alice", "third", at.Add(2*time.Minute)),
	}
	for _, m := range messages {
		req.NoError(repository.Append(m))
	}

	fromAlice, err := repository.BySender("alice")
	req.NoError(err)
	req.Len(fromAlice, 2)
	// Padded timestamp keys keep the scan chronological
	req.Equal("first", fromAlice[0].Text)
	req.Equal("third", fromAlice[1].Text)
	req.Equal(messages[0], fromAlice[0])
}

func Test_VisibleTo_Filters_Timeline(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(newTestDB(t), slog.Default(), nil)

	at := time.Now().UTC()
	private := domain.Message{
		ID: uuid.New(), From: "bob", To: "alice",
		Text: "psst", Kind: domain.KindPrivate, At: at.Add(time.Second),
	}
	hidden := domain.Message{
		ID: uuid.New(), From: "bob", To: "carol",
		Text: "secret", Kind: domain.KindPrivate, At: at.Add(2 * time.Second),
	}
	req.NoError(repository.Append(broadcastFrom("carol", "hello all", at)))
	req.NoError(repository.Append(private))
	req.NoError(repository.Append(hidden))

	visible, err := repository.VisibleTo("alice")
	req.NoError(err)
	req.Len(visible, 2)
	req.Equal("hello all", visible[0].Text)
	req.Equal("psst", visible[1].Text)
}

func Test_Scan_Stops_At_Limit(t *testing.T) {
	req := require.New(t)
	limit := 2
	repository := NewMessageRepository(newTestDB(t), slog.Default(), &limit)

	at := time.Now().UTC()
	for i, text := range []string{"one", "two", "three"} {
		req.NoError(repository.Append(broadcastFrom("alice", text, at.Add(time.Duration(i)*time.Second))))
	}

	fromAlice, err := repository.BySender("alice")
	req.NoError(err)
	req.Len(fromAlice, limit)
}
