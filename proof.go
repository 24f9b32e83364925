package astroledger

import (
	"fmt"

	"go.uber.org/zap"
)

// ProofVerifier checks challenge-response proofs over chart commitments.
//
// The protocol is a two-step Keccak-256 chain:
//
//	challenge = Keccak256(commitment || le64(positions...))
//	proof     = Keccak256(commitment || nonce || hex(challenge))
//
// Verify recomputes the chain from the public inputs and compares digests.
// This proves the caller can reproduce the chain from the commitment it
// claims knowledge of; it is a commitment-opening check, not a succinct
// zero-knowledge proof.
type ProofVerifier struct {
	limits ProofLimits
	log    *zap.Logger
}

// NewProofVerifier creates a verifier with the given structural limits.
// A nil logger disables logging.
func NewProofVerifier(cfg Config, logger *zap.Logger) *ProofVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProofVerifier{limits: cfg.Proof, log: logger}
}

// Verify runs the cryptographic challenge-response check. It returns false
// for empty commitment, proof, or nonce, for an empty position list, and
// for any proof that does not match the recomputed chain. Digest comparison
// is constant time.
func (v *ProofVerifier) Verify(commitment, proof, nonce string, positions []uint64) bool {
	if commitment == "" || proof == "" || nonce == "" {
		v.log.Debug("proof rejected: empty input")
		return false
	}
	if len(positions) == 0 {
		v.log.Debug("proof rejected: no positions")
		return false
	}

	challengeHex := Keccak256Hex([]byte(commitment), encodePositionsLE(positions))
	expected := Keccak256Hex([]byte(commitment), []byte(nonce), []byte(challengeHex))

	ok := digestEqual(expected, proof)
	if !ok {
		v.log.Debug("proof rejected: digest mismatch")
	}
	return ok
}

// VerifySimple runs the structural fast path: input lengths and position
// ranges only, no hashing. It exists as a cheap sanity filter and offers no
// cryptographic guarantee; it must never stand in for Verify on a
// trust-sensitive path.
func (v *ProofVerifier) VerifySimple(commitment, proof, nonce string, positions []uint64) bool {
	if len(commitment) < v.limits.MinCommitmentLen {
		return false
	}
	if len(proof) < v.limits.MinProofLen {
		return false
	}
	if len(nonce) < v.limits.MinNonceLen {
		return false
	}
	if len(positions) < v.limits.MinPositions {
		return false
	}
	for _, pos := range positions {
		if pos > v.limits.MaxPositionValue {
			return false
		}
	}
	return true
}

// BuildProof computes the proof digest that Verify accepts for the given
// inputs. The prover side of the protocol runs off-ledger; this exists for
// clients and tests.
func BuildProof(commitment, nonce string, positions []uint64) (string, error) {
	if commitment == "" {
		return "", fmt.Errorf("astroledger: commitment is required")
	}
	if nonce == "" {
		return "", fmt.Errorf("astroledger: nonce is required")
	}
	if len(positions) == 0 {
		return "", fmt.Errorf("astroledger: at least one position is required")
	}

	challengeHex := Keccak256Hex([]byte(commitment), encodePositionsLE(positions))
	return Keccak256Hex([]byte(commitment), []byte(nonce), []byte(challengeHex)), nil
}
