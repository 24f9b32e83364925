package astroledger

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// HashLength is the byte length of a chart data hash or commitment.
	HashLength = 32
	// AddressLength is the byte length of an owner identity.
	AddressLength = 20
)

// Hash is a 32-byte value, typically a Keccak-256 digest of chart or
// prediction data.
type Hash [HashLength]byte

// Address is the opaque 20-byte identity of a chart or prediction owner.
// The core compares addresses for equality and distinguishes the zero
// value; it attaches no other meaning to them.
type Address [AddressLength]byte

// BytesToHash converts bytes to a Hash, left-padding if shorter than 32 bytes.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash converts a hex string (with or without 0x prefix) to a Hash.
func HexToHash(s string) Hash {
	return BytesToHash(fromHex(s))
}

// Bytes returns the byte representation of the hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the 0x-prefixed hex representation of the hash.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// SetBytes sets the hash from a byte slice, left-padding if necessary.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// IsZero reports whether the hash is all zeros.
func (h Hash) IsZero() bool { return h == Hash{} }

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// MarshalText encodes the hash as 0x-prefixed hex.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText decodes a 0x-prefixed or bare hex string.
func (h *Hash) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(strings.TrimPrefix(string(text), "0x"))
	if err != nil {
		return fmt.Errorf("astroledger: invalid hash hex: %w", err)
	}
	if len(b) != HashLength {
		return fmt.Errorf("astroledger: hash must be %d bytes, got %d", HashLength, len(b))
	}
	copy(h[:], b)
	return nil
}

// BytesToAddress converts bytes to an Address, left-padding if shorter
// than 20 bytes.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress converts a hex string (with or without 0x prefix) to an Address.
func HexToAddress(s string) Address {
	return BytesToAddress(fromHex(s))
}

// Bytes returns the byte representation of the address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the 0x-prefixed hex representation of the address.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

// SetBytes sets the address from a byte slice, left-padding if necessary.
func (a *Address) SetBytes(b []byte) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// IsZero reports whether the address is all zeros.
func (a Address) IsZero() bool { return a == Address{} }

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// MarshalText encodes the address as 0x-prefixed hex.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText decodes a 0x-prefixed or bare hex string.
func (a *Address) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(strings.TrimPrefix(string(text), "0x"))
	if err != nil {
		return fmt.Errorf("astroledger: invalid address hex: %w", err)
	}
	if len(b) != AddressLength {
		return fmt.Errorf("astroledger: address must be %d bytes, got %d", AddressLength, len(b))
	}
	copy(a[:], b)
	return nil
}

// ChartRecord is an immutable chart commitment. CreatedAt is stamped once
// from the host clock at registration; Verified only ever transitions from
// false to true.
type ChartRecord struct {
	ID        string  `json:"id"`
	DataHash  Hash    `json:"dataHash"`
	Owner     Address `json:"owner"`
	CreatedAt uint64  `json:"createdAt"`
	Verified  bool    `json:"verified"`
}

// UserStats is the aggregated view of one owner's prediction activity.
// AverageX10 is the mean rating multiplied by 10 and truncated, so 37 means
// an average of 3.7 stars. It is 0 when RatingCount is 0.
type UserStats struct {
	PredictionCount uint64 `json:"predictionCount"`
	RatingCount     uint64 `json:"ratingCount"`
	AverageX10      uint64 `json:"averageX10"`
}

// GlobalStats holds the ledger-wide monotonic counters of the prediction
// subsystem.
type GlobalStats struct {
	TotalOwners      uint64 `json:"totalOwners"`
	TotalPredictions uint64 `json:"totalPredictions"`
}

// fromHex decodes a hex string, tolerating a 0x prefix and odd length.
// Invalid input yields an empty slice, mirroring a zero value.
func fromHex(s string) []byte {
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}
