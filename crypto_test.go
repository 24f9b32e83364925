package astroledger

import (
	"strings"
	"testing"
)

func TestKeccak256Hex(t *testing.T) {
	// Known Keccak-256 digests.
	if got := Keccak256Hex(nil); got != "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470" {
		t.Errorf("Keccak256Hex(empty) = %s", got)
	}
	if got := Keccak256Hex([]byte("abc")); got != "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45" {
		t.Errorf("Keccak256Hex(abc) = %s", got)
	}
}

func TestKeccak256Concatenation(t *testing.T) {
	// Hashing split inputs must equal hashing their concatenation.
	joined := Keccak256Hex([]byte("helloworld"))
	split := Keccak256Hex([]byte("hello"), []byte("world"))
	if joined != split {
		t.Errorf("split-input digest %s != joined digest %s", split, joined)
	}
}

func TestGenerateNonce(t *testing.T) {
	n1, err := GenerateNonce()
	if err != nil {
		t.Fatalf("GenerateNonce() error: %v", err)
	}
	if len(n1) != 64 {
		t.Errorf("nonce length = %d, want 64 hex chars", len(n1))
	}
	if _, err := FromHex(n1); err != nil {
		t.Errorf("nonce is not valid hex: %v", err)
	}

	n2, _ := GenerateNonce()
	if n1 == n2 {
		t.Error("two generated nonces are identical")
	}
}

func TestNewChartID(t *testing.T) {
	id1 := NewChartID()
	id2 := NewChartID()
	if id1 == "" || id1 == id2 {
		t.Errorf("NewChartID() = %q, %q; want distinct non-empty ids", id1, id2)
	}
}

func TestDigestEqual(t *testing.T) {
	a := strings.Repeat("ab", 32)
	if !digestEqual(a, a) {
		t.Error("digestEqual(a, a) = false")
	}
	if digestEqual(a, strings.Repeat("ac", 32)) {
		t.Error("digestEqual() = true for different digests")
	}
	if digestEqual(a, a[:32]) {
		t.Error("digestEqual() = true for different lengths")
	}
}

func TestHashSetBytes(t *testing.T) {
	h := BytesToHash([]byte{0x01, 0x02})
	if h[30] != 0x01 || h[31] != 0x02 {
		t.Errorf("BytesToHash short input not left-padded: %s", h)
	}
	if h.IsZero() {
		t.Error("nonzero hash reported IsZero")
	}
	if !(Hash{}).IsZero() {
		t.Error("zero hash not reported IsZero")
	}
}

func TestAddressHexRoundTrip(t *testing.T) {
	a := testOwner("roundtrip")
	back := HexToAddress(a.Hex())
	if back != a {
		t.Errorf("HexToAddress(a.Hex()) = %s, want %s", back, a)
	}
	if !(Address{}).IsZero() {
		t.Error("zero address not reported IsZero")
	}
}
