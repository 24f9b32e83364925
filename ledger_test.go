package astroledger

import (
	"testing"

	"go.uber.org/zap"
)

// stepClock advances by one second on every read, so createdAt values are
// distinct and monotonic within a test.
type stepClock struct {
	now uint64
}

func (c *stepClock) Now() uint64 {
	c.now++
	return c.now
}

// newTestLedger builds a ledger over a fresh in-memory store with a
// stepping clock and an inspectable event log.
func newTestLedger(t *testing.T) (*Ledger, *MemoryEventLog) {
	t.Helper()
	events := NewMemoryEventLog()
	ledger := NewLedger(NewMemoryKV(), &Options{
		Clock:  &stepClock{},
		Events: events,
		Logger: zap.NewNop(),
	})
	return ledger, events
}

func testOwner(seed string) Address {
	return BytesToAddress(Keccak256([]byte(seed))[:AddressLength])
}

func TestNewLedgerDefaults(t *testing.T) {
	ledger := NewLedger(NewMemoryKV(), nil)
	if ledger.Charts == nil || ledger.Predictions == nil || ledger.Ratings == nil || ledger.Proofs == nil {
		t.Fatal("NewLedger(nil) left a component unset")
	}
	if ledger.Events() == nil {
		t.Fatal("NewLedger(nil) left the event sink unset")
	}
	if err := ledger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}

func TestLedgerEndToEnd(t *testing.T) {
	ledger, events := newTestLedger(t)
	owner := testOwner("e2e")

	commitment := Keccak256Hex([]byte("birth data"))
	nonce := "0123456789abcdef0123456789abcdef"
	positions := []uint64{100, 200, 300, 400, 500, 600, 700}
	proof, err := BuildProof(commitment, nonce, positions)
	if err != nil {
		t.Fatalf("BuildProof() error: %v", err)
	}

	dataHash := Keccak256Hash([]byte("chart data"))
	if err := ledger.Charts.RegisterChartWithProof("chart-1", dataHash, owner, commitment, proof, nonce, positions); err != nil {
		t.Fatalf("RegisterChartWithProof() error: %v", err)
	}

	if err := ledger.Predictions.RegisterOwner(owner, HexToHash(commitment)); err != nil {
		t.Fatalf("RegisterOwner() error: %v", err)
	}
	predHash := Keccak256Hash([]byte("prediction"))
	if err := ledger.Predictions.StorePrediction(owner, 20260825, predHash); err != nil {
		t.Fatalf("StorePrediction() error: %v", err)
	}
	if err := ledger.Ratings.Rate(owner, 20260825, 5); err != nil {
		t.Fatalf("Rate() error: %v", err)
	}

	stats, err := ledger.Ratings.GetUserStats(owner)
	if err != nil {
		t.Fatalf("GetUserStats() error: %v", err)
	}
	want := UserStats{PredictionCount: 1, RatingCount: 1, AverageX10: 50}
	if stats != want {
		t.Errorf("GetUserStats() = %+v, want %+v", stats, want)
	}

	verified, err := ledger.Charts.IsVerified("chart-1")
	if err != nil {
		t.Fatalf("IsVerified() error: %v", err)
	}
	if !verified {
		t.Error("proof-gated registration should leave the chart verified")
	}

	if events.Len() != 1 {
		t.Errorf("event count = %d, want 1", events.Len())
	}
}
