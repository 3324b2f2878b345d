//go:generate go run go.uber.org/mock/mockgen -source=participant.go -destination=../mocks/mock_participant_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"batepapo/domain"
	"batepapo/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const participantPrefix = "participant:"

type IParticipantRepository interface {
	Create(participant domain.Participant) error
	Refresh(name string, at time.Time) error
	List() ([]domain.Participant, error)
	Remove(name string) error
	DeleteIfStaleBefore(name string, cutoff time.Time) (bool, error)
}

type ParticipantRepository struct {
	db *badger.DB
}

func NewParticipantRepository(db *badger.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// diskParticipant is the stored representation. LastHeartbeat is kept as a
// millisecond epoch, matching the wire-level lastStatus field.
type diskParticipant struct {
	Name          string `json:"name"`
	LastHeartbeat int64  `json:"lastHeartbeat"`
}

// Create inserts a participant if absent. The existence check and the
// insert run in a single transaction, so two concurrent registrations of
// the same name cannot both succeed.
func (r ParticipantRepository) Create(participant domain.Participant) error {
	data, err := json.Marshal(fromParticipant(participant))
	if err != nil {
		return storageErr(err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		key := participantKey(participant.Name)
		if _, err := txn.Get(key); err == nil {
			return errors.ErrParticipantExists
		} else if !stderrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil && !stderrors.Is(err, errors.ErrParticipantExists) {
		return storageErr(err)
	}
	return err
}

// Refresh updates the heartbeat of an existing participant. A name that was
// never registered (or already evicted) is not re-created.
func (r ParticipantRepository) Refresh(name string, at time.Time) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		key := participantKey(name)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		data, err := json.Marshal(diskParticipant{Name: name, LastHeartbeat: at.UnixMilli()})
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrParticipantNotFound
	}
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// List returns a snapshot of every registered participant.
func (r ParticipantRepository) List() ([]domain.Participant, error) {
	var disk []diskParticipant
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(participantPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var dp diskParticipant
				if err := json.Unmarshal(val, &dp); err != nil {
					return err
				}
				disk = append(disk, dp)
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
	return lo.Map(disk, func(dp diskParticipant, _ int) domain.Participant {
		return toParticipant(dp)
	}), nil
}

// Remove deletes a participant unconditionally, keyed on name only.
// Used to compensate a registration whose status-event append failed.
func (r ParticipantRepository) Remove(name string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(participantKey(name))
	})
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// DeleteIfStaleBefore removes the named participant only if its current
// heartbeat is still older than cutoff. The re-read and the delete share one
// transaction: a heartbeat committed after the sweeper's snapshot makes the
// participant survive, and the delete never matches on a stale snapshot
// value. Returns true when the participant was actually removed.
func (r ParticipantRepository) DeleteIfStaleBefore(name string, cutoff time.Time) (bool, error) {
	deleted := false
	err := r.db.Update(func(txn *badger.Txn) error {
		key := participantKey(name)
		item, err := txn.Get(key)
		if err != nil {
			// Already gone: nothing to evict.
			return nil
		}
		var dp diskParticipant
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &dp)
		}); err != nil {
			return err
		}
		if !toParticipant(dp).Stale(cutoff) {
			return nil
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, storageErr(err)
	}
	return deleted, nil
}

func participantKey(name string) []byte {
	return []byte(participantPrefix + name)
}

func fromParticipant(p domain.Participant) diskParticipant {
	return diskParticipant{Name: p.Name, LastHeartbeat: p.LastHeartbeat.UnixMilli()}
}

func toParticipant(dp diskParticipant) domain.Participant {
	return domain.Participant{
		Name:          dp.Name,
		LastHeartbeat: time.UnixMilli(dp.LastHeartbeat).UTC(),
	}
}

// storageErr converts any storage-layer failure into the generic
// ErrStorageUnavailable, keeping backend details out of callers.
func storageErr(err error) error {
	return fmt.Errorf("%w: %v", errors.ErrStorageUnavailable, err)
}
