package astroledger

import "sync"

// Event is a domain event emitted after a state transition commits.
type Event interface {
	// Name returns the event's type name.
	Name() string
}

// ChartCreated is emitted once per successful chart registration.
type ChartCreated struct {
	ChartID   string  `json:"chartId"`
	DataHash  Hash    `json:"dataHash"`
	Owner     Address `json:"owner"`
	CreatedAt uint64  `json:"createdAt"`
	Verified  bool    `json:"verified"`
}

// Name implements Event.
func (ChartCreated) Name() string { return "ChartCreated" }

// ChartVerified is emitted on every MarkVerified call, including repeat
// calls on an already-verified chart. Consumers must tolerate duplicates.
type ChartVerified struct {
	ChartID  string `json:"chartId"`
	DataHash Hash   `json:"dataHash"`
}

// Name implements Event.
func (ChartVerified) Name() string { return "ChartVerified" }

// EventSink is the append-only event log collaborator. The ledger writes
// events after the backing KV batch commits and has no dependency on who
// consumes them.
type EventSink interface {
	Append(ev Event) error
}

// MemoryEventLog is an in-memory append-only EventSink, safe for concurrent
// use. Hosts and tests use it to audit emissions.
type MemoryEventLog struct {
	mu     sync.RWMutex
	events []Event
}

// NewMemoryEventLog creates a new, empty MemoryEventLog.
func NewMemoryEventLog() *MemoryEventLog {
	return &MemoryEventLog{}
}

// Append records an event.
func (l *MemoryEventLog) Append(ev Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	return nil
}

// Events returns a copy of the emitted events in emission order.
func (l *MemoryEventLog) Events() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of emitted events.
func (l *MemoryEventLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}
