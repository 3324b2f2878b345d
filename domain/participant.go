// Package domain contains core concepts of the chat room.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

// Participant is a registered chat-room member. Name is the identity:
// the registry holds at most one Participant per distinct name.
type Participant struct {
	Name          string
	LastHeartbeat time.Time
}

// Stale reports whether the last heartbeat is strictly older than cutoff.
func (p Participant) Stale(cutoff time.Time) bool {
	return p.LastHeartbeat.Before(cutoff)
}
