package astroledger

import "time"

// Clock supplies the timestamp stamped onto chart commitments at creation.
// Implementations must be monotonically non-decreasing; the core reads no
// other ambient state.
type Clock interface {
	Now() uint64
}

// SystemClock reads the wall clock as unix seconds.
type SystemClock struct{}

// Now returns the current unix time in seconds.
func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}
