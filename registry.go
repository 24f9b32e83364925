package astroledger

import (
	"fmt"

	"go.uber.org/zap"
)

// ChartRegistry stores immutable chart commitments keyed by chart id, with
// a per-owner reverse index in insertion order. Records are never deleted;
// the only mutation after creation is the one-way verified transition.
type ChartRegistry struct {
	kv       KV
	clock    Clock
	events   EventSink
	verifier *ProofVerifier
	log      *zap.Logger
}

// RegisterChart records a new chart commitment. It fails with
// ErrChartExists when the id already holds a live record, ErrInvalidHash
// when dataHash is zero, and ErrInvalidOwner when owner is the zero
// address. On success it stamps the record with the host clock, appends the
// id to the owner's chart index, increments the global chart counter, and
// emits a ChartCreated event. All writes commit in one batch.
func (r *ChartRegistry) RegisterChart(id string, dataHash Hash, owner Address, verified bool) error {
	exists, err := r.kv.Has(chartKey(id))
	if err != nil {
		return fmt.Errorf("astroledger: register chart: %w", err)
	}
	if exists {
		r.log.Debug("chart registration rejected", zap.String("chart_id", id), zap.Error(ErrChartExists))
		return ErrChartExists
	}
	if dataHash.IsZero() {
		return ErrInvalidHash
	}
	if owner.IsZero() {
		return ErrInvalidOwner
	}

	rec := ChartRecord{
		ID:        id,
		DataHash:  dataHash,
		Owner:     owner,
		CreatedAt: r.clock.Now(),
		Verified:  verified,
	}
	recBytes, err := encodeChartRecord(rec)
	if err != nil {
		return err
	}

	ids, err := r.GetOwnerCharts(owner)
	if err != nil {
		return fmt.Errorf("astroledger: register chart: %w", err)
	}
	ids = append(ids, id)
	idsBytes, err := encodeChartIDs(ids)
	if err != nil {
		return err
	}

	total, err := readCounter(r.kv, counterCharts)
	if err != nil {
		return fmt.Errorf("astroledger: register chart: %w", err)
	}

	batch := r.kv.NewBatch()
	defer batch.Close()
	batch.Set(chartKey(id), recBytes)
	batch.Set(ownerChartsKey(owner), idsBytes)
	batch.Set(counterKey(counterCharts), encodeUint64(total+1))
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("astroledger: register chart: %w", err)
	}

	if err := r.events.Append(ChartCreated{
		ChartID:   id,
		DataHash:  dataHash,
		Owner:     owner,
		CreatedAt: rec.CreatedAt,
		Verified:  verified,
	}); err != nil {
		return fmt.Errorf("astroledger: register chart: emit event: %w", err)
	}

	r.log.Info("chart registered",
		zap.String("chart_id", id),
		zap.String("owner", owner.Hex()),
		zap.Bool("verified", verified),
	)
	return nil
}

// RegisterChartWithProof registers a chart gated on a challenge-response
// proof. A failing proof yields ErrProofInvalid and no state change; a
// passing proof registers the chart with verified set.
func (r *ChartRegistry) RegisterChartWithProof(
	id string,
	dataHash Hash,
	owner Address,
	commitment, proof, nonce string,
	positions []uint64,
) error {
	if !r.verifier.Verify(commitment, proof, nonce, positions) {
		r.log.Debug("proof-gated registration rejected", zap.String("chart_id", id))
		return ErrProofInvalid
	}
	return r.RegisterChart(id, dataHash, owner, true)
}

// VerifyChart reports whether the stored hash for id equals dataHash. It is
// a pure read with no failure mode: a missing id compares as the zero
// record, so a zero dataHash matches an absent chart.
func (r *ChartRegistry) VerifyChart(id string, dataHash Hash) (bool, error) {
	rec, err := r.GetChart(id)
	if err != nil {
		return false, err
	}
	return rec.DataHash == dataHash, nil
}

// MarkVerified flips the chart's verified flag to true. It fails with
// ErrChartNotFound for an unknown id. The call is idempotent and emits a
// ChartVerified event every time, including repeat calls.
func (r *ChartRegistry) MarkVerified(id string) error {
	val, ok, err := r.kv.Get(chartKey(id))
	if err != nil {
		return fmt.Errorf("astroledger: mark verified: %w", err)
	}
	if !ok {
		return ErrChartNotFound
	}
	rec, err := decodeChartRecord(val)
	if err != nil {
		return err
	}

	rec.Verified = true
	recBytes, err := encodeChartRecord(rec)
	if err != nil {
		return err
	}

	batch := r.kv.NewBatch()
	defer batch.Close()
	batch.Set(chartKey(id), recBytes)
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("astroledger: mark verified: %w", err)
	}

	if err := r.events.Append(ChartVerified{ChartID: id, DataHash: rec.DataHash}); err != nil {
		return fmt.Errorf("astroledger: mark verified: emit event: %w", err)
	}

	r.log.Info("chart marked verified", zap.String("chart_id", id))
	return nil
}

// GetChart returns the commitment for id, or the zero record when the id
// is unknown.
func (r *ChartRegistry) GetChart(id string) (ChartRecord, error) {
	val, ok, err := r.kv.Get(chartKey(id))
	if err != nil {
		return ChartRecord{}, fmt.Errorf("astroledger: get chart: %w", err)
	}
	if !ok {
		return ChartRecord{}, nil
	}
	return decodeChartRecord(val)
}

// HasChart reports whether a live commitment exists for id.
func (r *ChartRegistry) HasChart(id string) (bool, error) {
	ok, err := r.kv.Has(chartKey(id))
	if err != nil {
		return false, fmt.Errorf("astroledger: has chart: %w", err)
	}
	return ok, nil
}

// GetOwnerCharts returns the ids of the charts owner created, in insertion
// order. Owners with no charts get an empty slice.
func (r *ChartRegistry) GetOwnerCharts(owner Address) ([]string, error) {
	val, ok, err := r.kv.Get(ownerChartsKey(owner))
	if err != nil {
		return nil, fmt.Errorf("astroledger: get owner charts: %w", err)
	}
	if !ok {
		return []string{}, nil
	}
	return decodeChartIDs(val)
}

// TotalCharts returns the number of charts ever registered.
func (r *ChartRegistry) TotalCharts() (uint64, error) {
	total, err := readCounter(r.kv, counterCharts)
	if err != nil {
		return 0, fmt.Errorf("astroledger: total charts: %w", err)
	}
	return total, nil
}

// IsVerified reports whether the chart's verified flag is set. Unknown ids
// report false.
func (r *ChartRegistry) IsVerified(id string) (bool, error) {
	rec, err := r.GetChart(id)
	if err != nil {
		return false, err
	}
	return rec.Verified, nil
}
