package astroledger

import (
	"fmt"

	"go.uber.org/zap"
)

// RatingAggregator attaches 0-5 star ratings to prediction entries and
// maintains per-owner running sums and counts.
type RatingAggregator struct {
	kv          KV
	predictions *PredictionLedger
	cfg         Config
	log         *zap.Logger
}

// Rate stores a rating for the caller's prediction at the given day key.
// It fails with ErrInvalidRating when value exceeds the configured maximum
// and ErrPredictionNotFound when no prediction exists for (owner, date).
//
// A stored rating of 0 is indistinguishable from "never rated": when the
// previously stored value is 0 the call takes the new-rating branch
// (ratingCount += 1, ratingSum += value); otherwise it takes the update
// branch (ratingSum adjusted by the delta, ratingCount unchanged). A
// 0-star rating followed by a re-rating therefore counts twice. The new
// value is stored in both branches.
func (a *RatingAggregator) Rate(caller Address, date uint64, value uint8) error {
	if value > a.cfg.MaxRating {
		return ErrInvalidRating
	}

	exists, err := a.predictions.HasPrediction(caller, date)
	if err != nil {
		return fmt.Errorf("astroledger: rate: %w", err)
	}
	if !exists {
		return ErrPredictionNotFound
	}

	previous, err := a.GetRating(caller, date)
	if err != nil {
		return fmt.Errorf("astroledger: rate: %w", err)
	}

	stats, err := readUserStats(a.kv, caller)
	if err != nil {
		return fmt.Errorf("astroledger: rate: %w", err)
	}
	if previous == 0 {
		stats.RatingCount++
		stats.RatingSum += uint64(value)
	} else {
		stats.RatingSum = stats.RatingSum - uint64(previous) + uint64(value)
	}
	statsBytes, err := encodeUserStats(stats)
	if err != nil {
		return err
	}

	batch := a.kv.NewBatch()
	defer batch.Close()
	batch.Set(ratingKey(caller, date), []byte{value})
	batch.Set(userStatsKey(caller), statsBytes)
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("astroledger: rate: %w", err)
	}

	a.log.Info("prediction rated",
		zap.String("owner", caller.Hex()),
		zap.Uint64("date", date),
		zap.Uint8("rating", value),
		zap.Bool("update", previous != 0),
	)
	return nil
}

// GetRating returns the current rating for (owner, date). Keys that were
// never rated return 0, as does a stored 0-star rating.
func (a *RatingAggregator) GetRating(owner Address, date uint64) (uint8, error) {
	val, ok, err := a.kv.Get(ratingKey(owner, date))
	if err != nil {
		return 0, fmt.Errorf("astroledger: get rating: %w", err)
	}
	if !ok || len(val) == 0 {
		return 0, nil
	}
	return val[0], nil
}

// GetUserStats returns the owner's prediction count, rating count, and
// truncated average rating times 10 (0 when no ratings exist).
func (a *RatingAggregator) GetUserStats(owner Address) (UserStats, error) {
	stats, err := readUserStats(a.kv, owner)
	if err != nil {
		return UserStats{}, fmt.Errorf("astroledger: get user stats: %w", err)
	}

	out := UserStats{
		PredictionCount: stats.PredictionCount,
		RatingCount:     stats.RatingCount,
	}
	if stats.RatingCount > 0 {
		out.AverageX10 = stats.RatingSum * 10 / stats.RatingCount
	}
	return out, nil
}

// GetGlobalStats returns the ledger-wide owner and prediction counters.
func (a *RatingAggregator) GetGlobalStats() (GlobalStats, error) {
	owners, err := readCounter(a.kv, counterOwners)
	if err != nil {
		return GlobalStats{}, fmt.Errorf("astroledger: get global stats: %w", err)
	}
	predictions, err := readCounter(a.kv, counterPredictions)
	if err != nil {
		return GlobalStats{}, fmt.Errorf("astroledger: get global stats: %w", err)
	}
	return GlobalStats{TotalOwners: owners, TotalPredictions: predictions}, nil
}
