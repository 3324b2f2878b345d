package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"batepapo/domain"
	"batepapo/repositories"

	"github.com/samber/lo"
)

// Sweeper evicts participants whose heartbeat went stale. It runs on a
// fixed period, independent of request traffic, and shares the registry and
// the message log with the request handlers through the same repositories.
//
// Each run snapshots the registry, then evicts per participant with
// DeleteIfStaleBefore: the staleness re-check and the delete share a single
// storage transaction, so a heartbeat landing between snapshot and delete
// wins and the participant survives the run.
type Sweeper struct {
	log          *slog.Logger
	participants repositories.IParticipantRepository
	messages     repositories.IMessageRepository
	interval     time.Duration
	timeout      time.Duration
	clock        func() time.Time
	running      atomic.Bool
}

func NewSweeper(
	log *slog.Logger,
	participants repositories.IParticipantRepository,
	messages repositories.IMessageRepository,
	interval, timeout time.Duration,
) *Sweeper {
	return &Sweeper{
		log:          log,
		participants: participants,
		messages:     messages,
		interval:     interval,
		timeout:      timeout,
		clock:        time.Now,
	}
}

func (w *Sweeper) Run(ctx context.Context) error {
	w.log.Info("Starting eviction sweeper", "interval", w.interval, "timeout", w.timeout)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping sweeper")
			return nil
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep performs one eviction pass. A run that cannot even snapshot the
// registry is abandoned until the next tick; a failure on one participant
// never aborts the rest of the pass.
func (w *Sweeper) sweep(ctx context.Context) {
	if !w.running.CompareAndSwap(false, true) {
		w.log.Warn("Previous sweep still running, skipping this tick")
		return
	}
	defer w.running.Store(false)

	now := w.clock().UTC()
	cutoff := now.Add(-w.timeout)

	snapshot, err := w.participants.List()
	if err != nil {
		w.log.Error("Sweep aborted, registry unreachable", "error", err)
		return
	}

	stale := lo.Filter(snapshot, func(p domain.Participant, _ int) bool {
		return p.Stale(cutoff)
	})

	for _, p := range stale {
		if ctx.Err() != nil {
			return
		}
		// Keyed on the immutable name only: the repository re-reads the
		// current heartbeat before deleting, never the snapshot value.
		evicted, err := w.participants.DeleteIfStaleBefore(p.Name, cutoff)
		if err != nil {
			w.log.Error("Failed to evict participant", "name", p.Name, "error", err)
			continue
		}
		if !evicted {
			w.log.Debug("Participant renewed heartbeat during sweep", "name", p.Name)
			continue
		}
		if err := w.messages.Append(domain.NewDepartureEvent(p.Name, w.clock().UTC())); err != nil {
			w.log.Error("Failed to record departure", "name", p.Name, "error", err)
			continue
		}
		w.log.Info("Evicted stale participant", "name", p.Name)
	}
}
