package astroledger

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// PebbleKV is a durable KV backed by a Pebble database. Batches map onto
// Pebble write batches and commit with fsync, so a committed ledger
// operation survives process crash.
type PebbleKV struct {
	db *pebble.DB
}

var _ KV = (*PebbleKV)(nil)

// OpenPebbleKV opens (or creates) a Pebble database at path.
func OpenPebbleKV(path string) (*PebbleKV, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("astroledger: failed to open pebble db: %w", err)
	}
	return &PebbleKV{db: db}, nil
}

// Get returns a copy of the stored value. Pebble's returned slice is only
// valid until the closer is closed, so the copy is mandatory.
func (s *PebbleKV) Get(key []byte) ([]byte, bool, error) {
	val, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("astroledger: pebble get: %w", err)
	}
	defer closer.Close()

	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

// Has reports whether a value exists under key.
func (s *PebbleKV) Has(key []byte) (bool, error) {
	_, ok, err := s.Get(key)
	return ok, err
}

// NewBatch starts an empty Pebble write batch.
func (s *PebbleKV) NewBatch() Batch {
	return &pebbleBatch{b: s.db.NewBatch()}
}

// Close closes the underlying database.
func (s *PebbleKV) Close() error {
	return s.db.Close()
}

type pebbleBatch struct {
	b *pebble.Batch
}

func (pb *pebbleBatch) Set(key, value []byte) {
	// Errors are only possible on a closed batch; Commit surfaces them.
	_ = pb.b.Set(key, value, nil)
}

func (pb *pebbleBatch) Commit() error {
	if err := pb.b.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("astroledger: pebble batch commit: %w", err)
	}
	return nil
}

func (pb *pebbleBatch) Close() error {
	return pb.b.Close()
}
