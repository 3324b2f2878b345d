// Package domain contains core concepts of the chat room.
// This file defines Message events and related rules.
// Messages are immutable once written.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Broadcast is the reserved recipient meaning "visible to all participants".
const Broadcast = "Todos"

type MessageKind string

const (
	KindMessage MessageKind = "message"
	KindPrivate MessageKind = "private_message"
	KindStatus  MessageKind = "status"
)

// Message represents an immutable chat event. At is always assigned
// server-side, never taken from the client.
type Message struct {
	ID   uuid.UUID
	From string
	To   string
	Text string
	Kind MessageKind
	At   time.Time
}

// VisibleTo reports whether the message belongs in name's timeline:
// broadcasts, messages they authored, and private messages addressed to them.
func (m Message) VisibleTo(name string) bool {
	return m.To == Broadcast || m.From == name || m.To == name
}

// NewEntryEvent builds the synthetic status message appended when a
// participant joins the room.
func NewEntryEvent(name string, at time.Time) Message {
	return Message{
		ID:   uuid.New(),
		From: name,
		To:   Broadcast,
		Text: fmt.Sprintf("%s entered the room", name),
		Kind: KindStatus,
		At:   at,
	}
}

// NewDepartureEvent builds the synthetic status message appended when a
// participant is evicted or leaves.
func NewDepartureEvent(name string, at time.Time) Message {
	return Message{
		ID:   uuid.New(),
		From: name,
		To:   Broadcast,
		Text: fmt.Sprintf("%s left the room", name),
		Kind: KindStatus,
		At:   at,
	}
}
