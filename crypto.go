package astroledger

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
)

// Keccak256 computes the Keccak-256 hash of the concatenation of data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hex computes Keccak-256 and returns the lowercase hex digest.
func Keccak256Hex(data ...[]byte) string {
	return hex.EncodeToString(Keccak256(data...))
}

// Keccak256Hash computes Keccak-256 and returns the digest as a Hash.
func Keccak256Hash(data ...[]byte) Hash {
	return BytesToHash(Keccak256(data...))
}

// encodePositionsLE concatenates the little-endian 8-byte encoding of each
// position value. This is the canonical byte form hashed into the proof
// challenge.
func encodePositionsLE(positions []uint64) []byte {
	out := make([]byte, 0, 8*len(positions))
	var buf [8]byte
	for _, p := range positions {
		binary.LittleEndian.PutUint64(buf[:], p)
		out = append(out, buf[:]...)
	}
	return out
}

// digestEqual compares two hex digests in constant time. Length mismatch
// short-circuits, which leaks only the digest length.
func digestEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// GenerateNonce returns 32 cryptographically secure random bytes as a
// 64-character hex string, suitable as the nonce of a proof chain.
func GenerateNonce() (string, error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("astroledger: failed to generate nonce: %w", err)
	}
	return hex.EncodeToString(nonce), nil
}

// NewChartID returns a fresh unique chart identifier. Callers are free to
// use their own id scheme; uniqueness is enforced at registration either way.
func NewChartID() string {
	return uuid.NewString()
}

// ToHex encodes a byte slice to a lowercase hex string.
func ToHex(data []byte) string {
	return hex.EncodeToString(data)
}

// FromHex decodes a hex string to a byte slice.
func FromHex(hexStr string) ([]byte, error) {
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("astroledger: invalid hex string: %w", err)
	}
	return b, nil
}
