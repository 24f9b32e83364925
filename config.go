package astroledger

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProofLimits are the shape requirements enforced by the structural proof
// validator. They bound input lengths and the position range; they do not
// affect the cryptographic challenge-response check.
type ProofLimits struct {
	// MinCommitmentLen is the minimum commitment string length.
	MinCommitmentLen int `yaml:"minCommitmentLen"`
	// MinProofLen is the minimum proof string length.
	MinProofLen int `yaml:"minProofLen"`
	// MinNonceLen is the minimum nonce string length.
	MinNonceLen int `yaml:"minNonceLen"`
	// MinPositions is the minimum number of position values. The default
	// of 7 covers the seven classical planets.
	MinPositions int `yaml:"minPositions"`
	// MaxPositionValue is the maximum legal position, in degrees * 100
	// (36000 = 360 degrees).
	MaxPositionValue uint64 `yaml:"maxPositionValue"`
}

// Config carries the tunable limits of the ledger.
type Config struct {
	Proof ProofLimits `yaml:"proof"`
	// MaxRating is the highest legal star rating.
	MaxRating uint8 `yaml:"maxRating"`
}

// DefaultConfig returns the standard limits.
func DefaultConfig() Config {
	return Config{
		Proof: ProofLimits{
			MinCommitmentLen: 32,
			MinProofLen:      32,
			MinNonceLen:      16,
			MinPositions:     7,
			MaxPositionValue: 36000,
		},
		MaxRating: 5,
	}
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("astroledger: failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("astroledger: failed to parse config: %w", err)
	}
	return cfg, nil
}
