package astroledger

import (
	"errors"
	"testing"
)

// ratingFixture registers an owner with predictions on the given day keys.
func ratingFixture(t *testing.T, dates ...uint64) (*Ledger, Address) {
	t.Helper()
	ledger, _ := newTestLedger(t)
	owner := testOwner("rater")
	if err := ledger.Predictions.RegisterOwner(owner, Keccak256Hash([]byte("c"))); err != nil {
		t.Fatalf("RegisterOwner() error: %v", err)
	}
	for _, d := range dates {
		if err := ledger.Predictions.StorePrediction(owner, d, Keccak256Hash(encodeUint64(d))); err != nil {
			t.Fatalf("StorePrediction(%d) error: %v", d, err)
		}
	}
	return ledger, owner
}

func TestRateValidation(t *testing.T) {
	ledger, owner := ratingFixture(t, 1)

	if err := ledger.Ratings.Rate(owner, 1, 6); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("Rate(6) error = %v, want ErrInvalidRating", err)
	}
	if err := ledger.Ratings.Rate(owner, 1, 255); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("Rate(255) error = %v, want ErrInvalidRating", err)
	}
	if err := ledger.Ratings.Rate(owner, 1, 5); err != nil {
		t.Errorf("Rate(5) error: %v", err)
	}
}

func TestRateRequiresPrediction(t *testing.T) {
	ledger, owner := ratingFixture(t, 1)

	err := ledger.Ratings.Rate(owner, 99, 3)
	if !errors.Is(err, ErrPredictionNotFound) {
		t.Fatalf("Rate(unrated day) error = %v, want ErrPredictionNotFound", err)
	}
}

func TestRateNewThenUpdate(t *testing.T) {
	ledger, owner := ratingFixture(t, 1)

	if err := ledger.Ratings.Rate(owner, 1, 4); err != nil {
		t.Fatalf("Rate(4) error: %v", err)
	}
	stats, err := ledger.Ratings.GetUserStats(owner)
	if err != nil {
		t.Fatalf("GetUserStats() error: %v", err)
	}
	if stats.RatingCount != 1 || stats.AverageX10 != 40 {
		t.Errorf("after first rating: count = %d, averageX10 = %d, want 1, 40", stats.RatingCount, stats.AverageX10)
	}

	// Re-rating a nonzero rating replaces the value without recounting.
	if err := ledger.Ratings.Rate(owner, 1, 2); err != nil {
		t.Fatalf("Rate(2) error: %v", err)
	}
	stats, _ = ledger.Ratings.GetUserStats(owner)
	if stats.RatingCount != 1 || stats.AverageX10 != 20 {
		t.Errorf("after re-rating: count = %d, averageX10 = %d, want 1, 20", stats.RatingCount, stats.AverageX10)
	}

	got, _ := ledger.Ratings.GetRating(owner, 1)
	if got != 2 {
		t.Errorf("GetRating() = %d, want 2", got)
	}
}

// A stored 0 is indistinguishable from "never rated": re-rating after a
// 0-star rating takes the new-rating branch again and the key counts twice.
func TestRateZeroSentinel(t *testing.T) {
	ledger, owner := ratingFixture(t, 1)

	if err := ledger.Ratings.Rate(owner, 1, 0); err != nil {
		t.Fatalf("Rate(0) error: %v", err)
	}
	stats, _ := ledger.Ratings.GetUserStats(owner)
	if stats.RatingCount != 1 || stats.AverageX10 != 0 {
		t.Errorf("after 0-star rating: count = %d, averageX10 = %d, want 1, 0", stats.RatingCount, stats.AverageX10)
	}

	if err := ledger.Ratings.Rate(owner, 1, 3); err != nil {
		t.Fatalf("Rate(3) error: %v", err)
	}
	stats, _ = ledger.Ratings.GetUserStats(owner)
	if stats.RatingCount != 2 {
		t.Errorf("RatingCount = %d after 0 then 3, want 2 (zero-sentinel double count)", stats.RatingCount)
	}
	if stats.AverageX10 != 15 {
		t.Errorf("AverageX10 = %d, want 15 (sum 3 over count 2)", stats.AverageX10)
	}
}

func TestRateSequenceFinalValue(t *testing.T) {
	ledger, owner := ratingFixture(t, 1)

	seq := []uint8{4, 1, 5, 2}
	for _, v := range seq {
		if err := ledger.Ratings.Rate(owner, 1, v); err != nil {
			t.Fatalf("Rate(%d) error: %v", v, err)
		}
	}

	got, _ := ledger.Ratings.GetRating(owner, 1)
	if got != seq[len(seq)-1] {
		t.Errorf("GetRating() = %d, want %d (last value wins)", got, seq[len(seq)-1])
	}
	stats, _ := ledger.Ratings.GetUserStats(owner)
	if stats.RatingCount != 1 {
		t.Errorf("RatingCount = %d across a nonzero-first sequence, want 1", stats.RatingCount)
	}
	if stats.AverageX10 != 20 {
		t.Errorf("AverageX10 = %d, want 20", stats.AverageX10)
	}
}

func TestUserStatsTruncation(t *testing.T) {
	ledger, owner := ratingFixture(t, 1, 2, 3)

	for date, v := range map[uint64]uint8{1: 5, 2: 4, 3: 4} {
		if err := ledger.Ratings.Rate(owner, date, v); err != nil {
			t.Fatalf("Rate(%d, %d) error: %v", date, v, err)
		}
	}

	stats, err := ledger.Ratings.GetUserStats(owner)
	if err != nil {
		t.Fatalf("GetUserStats() error: %v", err)
	}
	// sum 13 over 3 ratings: 130/3 = 43.33 truncated to 43.
	if stats.AverageX10 != 43 {
		t.Errorf("AverageX10 = %d, want 43 (truncating division)", stats.AverageX10)
	}
	if stats.PredictionCount != 3 || stats.RatingCount != 3 {
		t.Errorf("counts = (%d, %d), want (3, 3)", stats.PredictionCount, stats.RatingCount)
	}
}

func TestUserStatsEmpty(t *testing.T) {
	ledger, _ := newTestLedger(t)

	stats, err := ledger.Ratings.GetUserStats(testOwner("nobody"))
	if err != nil {
		t.Fatalf("GetUserStats() error: %v", err)
	}
	if stats != (UserStats{}) {
		t.Errorf("GetUserStats(nobody) = %+v, want zero stats", stats)
	}
}

func TestGetRatingMissing(t *testing.T) {
	ledger, _ := newTestLedger(t)

	got, err := ledger.Ratings.GetRating(testOwner("nobody"), 1)
	if err != nil {
		t.Fatalf("GetRating() error: %v", err)
	}
	if got != 0 {
		t.Errorf("GetRating(missing) = %d, want 0", got)
	}
}

func TestGlobalStats(t *testing.T) {
	ledger, _ := newTestLedger(t)

	global, err := ledger.Ratings.GetGlobalStats()
	if err != nil {
		t.Fatalf("GetGlobalStats() error: %v", err)
	}
	if global != (GlobalStats{}) {
		t.Fatalf("GetGlobalStats() = %+v on an empty ledger, want zeros", global)
	}

	for _, seed := range []string{"alice", "bob"} {
		owner := testOwner(seed)
		if err := ledger.Predictions.RegisterOwner(owner, Keccak256Hash([]byte(seed))); err != nil {
			t.Fatalf("RegisterOwner(%s) error: %v", seed, err)
		}
		for date := uint64(1); date <= 2; date++ {
			if err := ledger.Predictions.StorePrediction(owner, date, Keccak256Hash(encodeUint64(date))); err != nil {
				t.Fatalf("StorePrediction error: %v", err)
			}
		}
	}

	global, _ = ledger.Ratings.GetGlobalStats()
	want := GlobalStats{TotalOwners: 2, TotalPredictions: 4}
	if global != want {
		t.Errorf("GetGlobalStats() = %+v, want %+v", global, want)
	}
}
