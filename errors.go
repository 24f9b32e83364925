package astroledger

import "errors"

// The closed set of domain errors. Validation errors reject malformed input,
// conflict errors reject writes to keys that already hold a live record, and
// not-found errors reject operations on absent records. Storage failures
// from the host KV are wrapped separately and carry one of these only when
// the domain check itself failed.
var (
	// ErrChartExists is returned when registering a chart id that already
	// has a live commitment.
	ErrChartExists = errors.New("astroledger: chart already exists")

	// ErrInvalidHash is returned when a chart or prediction hash is the
	// zero value.
	ErrInvalidHash = errors.New("astroledger: invalid hash")

	// ErrInvalidOwner is returned when the owner identity is the zero
	// address.
	ErrInvalidOwner = errors.New("astroledger: invalid owner address")

	// ErrChartNotFound is returned when marking an unknown chart id as
	// verified.
	ErrChartNotFound = errors.New("astroledger: chart does not exist")

	// ErrInvalidCommitment is returned when an owner registers with a zero
	// commitment.
	ErrInvalidCommitment = errors.New("astroledger: invalid commitment")

	// ErrOwnerRegistered is returned on a second registration attempt for
	// the same owner. Registration happens at most once per owner.
	ErrOwnerRegistered = errors.New("astroledger: owner already registered")

	// ErrNotRegistered is returned when storing a prediction for an owner
	// that never registered.
	ErrNotRegistered = errors.New("astroledger: owner not registered")

	// ErrPredictionExists is returned when a prediction already exists for
	// the (owner, date) key. Prediction content is frozen at creation.
	ErrPredictionExists = errors.New("astroledger: prediction already exists")

	// ErrPredictionNotFound is returned when rating a (owner, date) key
	// that holds no prediction.
	ErrPredictionNotFound = errors.New("astroledger: prediction not found")

	// ErrInvalidRating is returned when a rating value exceeds the
	// configured maximum (5 stars by default).
	ErrInvalidRating = errors.New("astroledger: invalid rating")

	// ErrProofInvalid is returned by proof-gated registration when the
	// challenge-response check rejects the supplied proof.
	ErrProofInvalid = errors.New("astroledger: proof verification failed")
)
