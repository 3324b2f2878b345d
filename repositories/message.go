//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"batepapo/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const messagePrefix = "msg:"

type IMessageRepository interface {
	Append(message domain.Message) error
	BySender(name string) ([]domain.Message, error)
	VisibleTo(name string) ([]domain.Message, error)
}

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) MessageRepository {
	return MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

type diskMessage struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	Kind string `json:"kind"`
	At   int64  `json:"at"`
}

// Append persists a message. The key is formatted as
// "msg:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two
//     messages arrive at the same nanosecond.
//
// The log is append-only: no update or delete path exists.
func (m MessageRepository) Append(message domain.Message) error {
	key := fmt.Sprintf("%s%019d:%s", messagePrefix, message.At.UnixNano(), message.ID)
	data, err := json.Marshal(fromMessage(message))
	if err != nil {
		return storageErr(err)
	}
	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// BySender returns every message authored by name, oldest first.
// This mirrors the observed GET /messages semantics: the filter is on the
// sender, not on recipient visibility.
func (m MessageRepository) BySender(name string) ([]domain.Message, error) {
	return m.scan(func(msg domain.Message) bool {
		return msg.From == name
	})
}

// VisibleTo returns the messages in name's timeline, oldest first:
// broadcasts, private messages addressed to them, and their own.
func (m MessageRepository) VisibleTo(name string) ([]domain.Message, error) {
	return m.scan(func(msg domain.Message) bool {
		return msg.VisibleTo(name)
	})
}

// scan walks the message prefix in key order. Thanks to the padded timestamp
// in the key, messages come back naturally sorted by time. It stops
// collecting once the configured limitMessages is reached.
func (m MessageRepository) scan(keep func(domain.Message) bool) ([]domain.Message, error) {
	var messages []domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(messagePrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(messages) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d messages reached", *m.limitMessages))
				break
			}
			err := it.Item().Value(func(val []byte) error {
				var dm diskMessage
				if err := json.Unmarshal(val, &dm); err != nil {
					return err
				}
				msg, err := toMessage(dm)
				if err != nil {
					return err
				}
				if keep(msg) {
					messages = append(messages, msg)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return messages, nil
}

func fromMessage(message domain.Message) diskMessage {
	return diskMessage{
		ID:   message.ID.String(),
		From: message.From,
		To:   message.To,
		Text: message.Text,
		Kind: string(message.Kind),
		At:   message.At.UnixNano(),
	}
}

func toMessage(dm diskMessage) (domain.Message, error) {
	parsedID, err := uuid.Parse(dm.ID)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:   parsedID,
		From: dm.From,
		To:   dm.To,
		Text: dm.Text,
		Kind: domain.MessageKind(dm.Kind),
		At:   time.Unix(0, dm.At).UTC(),
	}, nil
}
