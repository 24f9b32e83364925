package astroledger

import (
	"fmt"

	"go.uber.org/zap"
)

// PredictionLedger stores one-time owner registrations and per-(owner, date)
// prediction entries. Dates are opaque day keys; the ledger does not
// validate them against a calendar. Entries are content-frozen once created.
type PredictionLedger struct {
	kv  KV
	log *zap.Logger
}

// RegisterOwner records the caller's birth data commitment and sets their
// registration flag. It fails with ErrInvalidCommitment for a zero
// commitment and ErrOwnerRegistered on a repeat attempt; registration
// happens at most once per owner, ever.
func (p *PredictionLedger) RegisterOwner(caller Address, commitment Hash) error {
	if commitment.IsZero() {
		return ErrInvalidCommitment
	}

	registered, err := p.IsRegistered(caller)
	if err != nil {
		return fmt.Errorf("astroledger: register owner: %w", err)
	}
	if registered {
		p.log.Debug("owner registration rejected", zap.String("owner", caller.Hex()), zap.Error(ErrOwnerRegistered))
		return ErrOwnerRegistered
	}

	totalOwners, err := readCounter(p.kv, counterOwners)
	if err != nil {
		return fmt.Errorf("astroledger: register owner: %w", err)
	}

	batch := p.kv.NewBatch()
	defer batch.Close()
	batch.Set(commitmentKey(caller), commitment.Bytes())
	batch.Set(registeredKey(caller), []byte{1})
	batch.Set(counterKey(counterOwners), encodeUint64(totalOwners+1))
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("astroledger: register owner: %w", err)
	}

	p.log.Info("owner registered", zap.String("owner", caller.Hex()))
	return nil
}

// StorePrediction records the caller's prediction hash for a day key. It
// fails with ErrNotRegistered when the caller never registered,
// ErrInvalidHash for a zero hash, and ErrPredictionExists when the
// (owner, date) key already holds an entry. On success it bumps the
// caller's prediction count and the global prediction counter in the same
// batch.
func (p *PredictionLedger) StorePrediction(caller Address, date uint64, hash Hash) error {
	registered, err := p.IsRegistered(caller)
	if err != nil {
		return fmt.Errorf("astroledger: store prediction: %w", err)
	}
	if !registered {
		return ErrNotRegistered
	}
	if hash.IsZero() {
		return ErrInvalidHash
	}

	exists, err := p.HasPrediction(caller, date)
	if err != nil {
		return fmt.Errorf("astroledger: store prediction: %w", err)
	}
	if exists {
		p.log.Debug("prediction rejected",
			zap.String("owner", caller.Hex()),
			zap.Uint64("date", date),
			zap.Error(ErrPredictionExists),
		)
		return ErrPredictionExists
	}

	stats, err := readUserStats(p.kv, caller)
	if err != nil {
		return fmt.Errorf("astroledger: store prediction: %w", err)
	}
	stats.PredictionCount++
	statsBytes, err := encodeUserStats(stats)
	if err != nil {
		return err
	}

	globalTotal, err := readCounter(p.kv, counterPredictions)
	if err != nil {
		return fmt.Errorf("astroledger: store prediction: %w", err)
	}

	batch := p.kv.NewBatch()
	defer batch.Close()
	batch.Set(predictionKey(caller, date), hash.Bytes())
	batch.Set(userStatsKey(caller), statsBytes)
	batch.Set(counterKey(counterPredictions), encodeUint64(globalTotal+1))
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("astroledger: store prediction: %w", err)
	}

	p.log.Info("prediction stored", zap.String("owner", caller.Hex()), zap.Uint64("date", date))
	return nil
}

// GetCommitment returns the owner's registered commitment, or the zero hash
// when the owner never registered.
func (p *PredictionLedger) GetCommitment(owner Address) (Hash, error) {
	val, ok, err := p.kv.Get(commitmentKey(owner))
	if err != nil {
		return Hash{}, fmt.Errorf("astroledger: get commitment: %w", err)
	}
	if !ok {
		return Hash{}, nil
	}
	return BytesToHash(val), nil
}

// IsRegistered reports whether the owner's registration flag is set.
func (p *PredictionLedger) IsRegistered(owner Address) (bool, error) {
	ok, err := p.kv.Has(registeredKey(owner))
	if err != nil {
		return false, fmt.Errorf("astroledger: is registered: %w", err)
	}
	return ok, nil
}

// GetPrediction returns the prediction hash for (owner, date), or the zero
// hash when no entry exists.
func (p *PredictionLedger) GetPrediction(owner Address, date uint64) (Hash, error) {
	val, ok, err := p.kv.Get(predictionKey(owner, date))
	if err != nil {
		return Hash{}, fmt.Errorf("astroledger: get prediction: %w", err)
	}
	if !ok {
		return Hash{}, nil
	}
	return BytesToHash(val), nil
}

// HasPrediction reports whether a prediction entry exists for (owner, date).
func (p *PredictionLedger) HasPrediction(owner Address, date uint64) (bool, error) {
	ok, err := p.kv.Has(predictionKey(owner, date))
	if err != nil {
		return false, fmt.Errorf("astroledger: has prediction: %w", err)
	}
	return ok, nil
}
