// Command astroledger runs a short end-to-end walkthrough of the ledger:
// it registers a chart commitment gated on a freshly built proof, stores a
// daily prediction, rates it, and prints the resulting statistics.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	astroledger "github.com/astroledger/astroledger"
)

func main() {
	var (
		dbPath     = flag.String("db", "", "pebble database directory (empty = in-memory)")
		configPath = flag.String("config", "", "optional YAML config file")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if err := run(*dbPath, *configPath, *verbose); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func run(dbPath, configPath string, verbose bool) error {
	cfg := astroledger.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = astroledger.LoadConfig(configPath); err != nil {
			return err
		}
	}

	logger := zap.NewNop()
	if verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer logger.Sync()
	}

	var kv astroledger.KV
	if dbPath == "" {
		kv = astroledger.NewMemoryKV()
		color.Cyan("astroledger demo (in-memory store)")
	} else {
		var err error
		if kv, err = astroledger.OpenPebbleKV(dbPath); err != nil {
			return err
		}
		color.Cyan("astroledger demo (pebble store at %s)", dbPath)
	}

	events := astroledger.NewMemoryEventLog()
	ledger := astroledger.NewLedger(kv, &astroledger.Options{
		Events: events,
		Logger: logger,
		Config: cfg,
	})
	defer ledger.Close()

	owner := astroledger.BytesToAddress(astroledger.Keccak256([]byte("demo-owner"))[:astroledger.AddressLength])
	chartID := astroledger.NewChartID()
	dataHash := astroledger.Keccak256Hash([]byte("natal chart: 1990-06-15T08:30:00Z, 48.85N 2.35E"))

	// Prover side: commit to the birth data and build the proof chain.
	commitment := astroledger.Keccak256Hex([]byte("birth data secret"))
	nonce, err := astroledger.GenerateNonce()
	if err != nil {
		return err
	}
	positions := []uint64{8432, 12050, 20115, 27800, 31099, 1525, 9984}
	proof, err := astroledger.BuildProof(commitment, nonce, positions)
	if err != nil {
		return err
	}

	if err := ledger.Charts.RegisterChartWithProof(chartID, dataHash, owner, commitment, proof, nonce, positions); err != nil {
		return err
	}
	color.Green("registered chart %s (proof verified)", chartID)

	match, err := ledger.Charts.VerifyChart(chartID, dataHash)
	if err != nil {
		return err
	}
	fmt.Printf("  hash match: %v\n", match)

	// A persistent store keeps the one-time registration across runs.
	switch err := ledger.Predictions.RegisterOwner(owner, astroledger.HexToHash(commitment)); {
	case err == nil:
		color.Green("registered owner %s", owner.Hex())
	case errors.Is(err, astroledger.ErrOwnerRegistered):
		color.Yellow("owner %s already registered", owner.Hex())
	default:
		return err
	}

	const day = 20260825
	predHash := astroledger.Keccak256Hash([]byte("mercury retrograde: avoid signing contracts"))
	switch err := ledger.Predictions.StorePrediction(owner, day, predHash); {
	case err == nil:
		color.Green("stored prediction for day %d", day)
	case errors.Is(err, astroledger.ErrPredictionExists):
		color.Yellow("prediction for day %d already stored", day)
	default:
		return err
	}

	if err := ledger.Ratings.Rate(owner, day, 4); err != nil {
		return err
	}
	color.Green("rated prediction: 4 stars")

	stats, err := ledger.Ratings.GetUserStats(owner)
	if err != nil {
		return err
	}
	global, err := ledger.Ratings.GetGlobalStats()
	if err != nil {
		return err
	}
	total, err := ledger.Charts.TotalCharts()
	if err != nil {
		return err
	}

	fmt.Printf("  user stats: %d prediction(s), %d rating(s), average %d.%d\n",
		stats.PredictionCount, stats.RatingCount, stats.AverageX10/10, stats.AverageX10%10)
	fmt.Printf("  global: %d owner(s), %d prediction(s), %d chart(s)\n",
		global.TotalOwners, global.TotalPredictions, total)
	fmt.Printf("  events emitted: %d\n", events.Len())
	return nil
}
