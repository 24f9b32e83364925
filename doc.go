// Package astroledger implements an append-only ledger of natal chart
// commitments with a hash-based challenge-response proof protocol and a
// per-owner prediction and rating subsystem.
//
// The ledger binds a unique chart id to a Keccak-256 data hash and an owner
// identity. Commitments are immutable after creation; the only permitted
// mutation is the one-way transition to the verified state. A reverse index
// tracks, per owner, the ids of the charts they created in insertion order.
//
// The proof protocol is a two-step hash chain rather than a succinct
// zero-knowledge system: a challenge is derived from the commitment and the
// little-endian encoding of the planetary position values, and the proof is
// the Keccak-256 digest of commitment, nonce, and the hex-encoded challenge.
// A verifier holding only the public inputs can confirm that the prover
// reproduced the chain without learning the underlying birth data. A separate
// structural validator checks input shape only and offers no cryptographic
// guarantee.
//
// The prediction subsystem gates per-day prediction entries on a one-time
// owner registration, and aggregates 0-5 star ratings into per-owner running
// sums and counts.
//
// This package implements the core primitives:
//
//   - Keccak-256 hashing, proof construction, and proof verification
//   - Chart commitment registration, lookup, and verification marking
//   - Owner registration, prediction storage, and rating aggregation
//   - Keyed transactional storage (in-memory and Pebble-backed)
//   - Append-only domain event emission
//
// # Host collaborators
//
// The ledger performs no internal threading and holds no ambient state. The
// host supplies a keyed store with all-or-nothing batch commit, a
// monotonically non-decreasing clock, the resolved caller identity for
// caller-scoped operations, and an append-only event sink. Every public
// operation either commits all of its writes in one batch or leaves the
// store untouched.
//
// # Errors
//
// All failures are reported through the closed set of sentinel errors in
// errors.go and can be matched with errors.Is. Host storage failures are
// wrapped and propagated; the core never partially applies state on an error.
package astroledger
