package astroledger

import "go.uber.org/zap"

// Options configures a Ledger. Zero-value fields fall back to defaults:
// the system clock, an in-memory event log, a no-op logger, and the
// limits from DefaultConfig.
type Options struct {
	Clock  Clock
	Events EventSink
	Logger *zap.Logger
	Config Config
}

// Ledger is the process-wide handle over one keyed store. It wires the
// chart registry, prediction ledger, rating aggregator, and proof verifier
// to shared host collaborators; construct it once and pass it explicitly
// instead of relying on ambient globals.
type Ledger struct {
	Charts      *ChartRegistry
	Predictions *PredictionLedger
	Ratings     *RatingAggregator
	Proofs      *ProofVerifier

	kv     KV
	events EventSink
	log    *zap.Logger
}

// NewLedger creates a Ledger over the given store. A nil opts selects all
// defaults.
func NewLedger(kv KV, opts *Options) *Ledger {
	if opts == nil {
		opts = &Options{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	events := opts.Events
	if events == nil {
		events = NewMemoryEventLog()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}

	verifier := NewProofVerifier(cfg, logger)
	predictions := &PredictionLedger{kv: kv, log: logger}

	return &Ledger{
		Charts: &ChartRegistry{
			kv:       kv,
			clock:    clock,
			events:   events,
			verifier: verifier,
			log:      logger,
		},
		Predictions: predictions,
		Ratings: &RatingAggregator{
			kv:          kv,
			predictions: predictions,
			cfg:         cfg,
			log:         logger,
		},
		Proofs: verifier,
		kv:     kv,
		events: events,
		log:    logger,
	}
}

// Events returns the ledger's event sink.
func (l *Ledger) Events() EventSink {
	return l.events
}

// Close releases the backing store.
func (l *Ledger) Close() error {
	return l.kv.Close()
}
