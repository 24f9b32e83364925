package astroledger

import "sync"

// KV is the keyed storage collaborator supplied by the host. Writes happen
// only through batches, which commit all staged writes atomically or not at
// all; the ledger relies on this for its no-partial-application guarantee.
type KV interface {
	// Get returns the value stored under key and whether the key exists.
	Get(key []byte) ([]byte, bool, error)

	// Has reports whether a value exists under key.
	Has(key []byte) (bool, error)

	// NewBatch starts an empty write batch. Staged writes are invisible
	// to readers until Commit.
	NewBatch() Batch

	// Close releases the store.
	Close() error
}

// Batch is a set of staged writes applied atomically by Commit.
type Batch interface {
	// Set stages a write of value under key.
	Set(key, value []byte)

	// Commit applies every staged write. After Commit the batch must not
	// be reused.
	Commit() error

	// Close discards the batch without applying it.
	Close() error
}

// MemoryKV is an in-memory KV backed by a map. It is safe for concurrent
// use; batch commits are applied under a single lock acquisition so readers
// never observe a half-applied batch.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV creates a new, empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value so callers cannot mutate the
// store's backing slice.
func (s *MemoryKV) Get(key []byte) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[string(key)]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

// Has reports whether a value exists under key.
func (s *MemoryKV) Has(key []byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[string(key)]
	return ok, nil
}

// NewBatch starts an empty write batch.
func (s *MemoryKV) NewBatch() Batch {
	return &memoryBatch{kv: s}
}

// Close releases the store. Subsequent reads see an empty store.
func (s *MemoryKV) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryKV) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

type kvWrite struct {
	key   string
	value []byte
}

type memoryBatch struct {
	kv     *MemoryKV
	writes []kvWrite
}

// Set stages a write. The value is copied so later caller mutations do not
// leak into the store.
func (b *memoryBatch) Set(key, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	b.writes = append(b.writes, kvWrite{key: string(key), value: v})
}

// Commit applies all staged writes under one lock acquisition.
func (b *memoryBatch) Commit() error {
	b.kv.mu.Lock()
	defer b.kv.mu.Unlock()
	for _, w := range b.writes {
		b.kv.data[w.key] = w.value
	}
	b.writes = nil
	return nil
}

// Close discards the staged writes.
func (b *memoryBatch) Close() error {
	b.writes = nil
	return nil
}
