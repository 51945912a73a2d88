package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultRadius is the arena radius used when none is configured.
	DefaultRadius = 280.0
	// DefaultSeed is the seed used when none is configured.
	DefaultSeed int64 = 42
	// MaxInitialCreatures caps the total starting population.
	// The memory pass is quadratic in population size.
	MaxInitialCreatures = 100000
)

var (
	// ErrInvalidPopulation is returned for negative or oversized initial counts,
	// and for memory-capable species in a classic game.
	ErrInvalidPopulation = errors.New("invalid population")
	// ErrInvalidConfig is returned for a bad radius or unknown variant.
	ErrInvalidConfig = errors.New("invalid game config")
)

// Variant selects which rules a game runs with.
type Variant string

const (
	// VariantClassic supports only Hawks and Doves and skips the memory pass.
	VariantClassic Variant = "classic"
	// VariantFull supports all four species.
	VariantFull Variant = "full"
)

// validVariants maps accepted variant strings; empty defaults to full.
var validVariants = map[Variant]bool{
	VariantClassic: true,
	VariantFull:    true,
	"":             true,
}

// IsValidVariant returns true if the given string is a recognized variant.
func IsValidVariant(v string) bool {
	return validVariants[Variant(v)]
}

// OrDefault resolves the empty variant to VariantFull.
func (v Variant) OrDefault() Variant {
	if v == "" {
		return VariantFull
	}
	return v
}

// GameConfig describes how a game starts. Loadable from YAML.
type GameConfig struct {
	Hawks      int     `yaml:"hawks" json:"hawks"`
	Doves      int     `yaml:"doves" json:"doves"`
	Grudges    int     `yaml:"grudges" json:"grudges"`
	Detectives int     `yaml:"detectives" json:"detectives"`
	Radius     float64 `yaml:"radius" json:"radius"`
	Seed       int64   `yaml:"seed" json:"seed"`
	Variant    Variant `yaml:"variant" json:"variant"`
}

// DefaultGameConfig returns an empty population on the default arena.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Radius:  DefaultRadius,
		Seed:    DefaultSeed,
		Variant: VariantFull,
	}
}

// Count returns the configured initial count for species s.
func (c GameConfig) Count(s Species) int {
	switch s {
	case Hawk:
		return c.Hawks
	case Dove:
		return c.Doves
	case Grudge:
		return c.Grudges
	case Detective:
		return c.Detectives
	}
	return 0
}

// Total returns the configured initial population size.
func (c GameConfig) Total() int {
	return c.Hawks + c.Doves + c.Grudges + c.Detectives
}

// Validate checks the population counts, radius and variant.
func (c GameConfig) Validate() error {
	if !validVariants[c.Variant] {
		return fmt.Errorf("%w: unknown variant %q; valid: classic, full", ErrInvalidConfig, c.Variant)
	}
	if math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0) || c.Radius <= 0 {
		return fmt.Errorf("%w: radius must be a positive finite number, got %f", ErrInvalidConfig, c.Radius)
	}
	total := 0
	for _, s := range AllSpecies {
		n := c.Count(s)
		if n < 0 {
			return fmt.Errorf("%w: %s count must be non-negative, got %d", ErrInvalidPopulation, s, n)
		}
		if n > 0 && c.Variant.OrDefault() == VariantClassic && !s.Traits().Classic {
			return fmt.Errorf("%w: %s is not available in the classic variant", ErrInvalidPopulation, s)
		}
		if n > MaxInitialCreatures-total {
			return fmt.Errorf("%w: initial population exceeds %d creatures", ErrInvalidPopulation, MaxInitialCreatures)
		}
		total += n
	}
	return nil
}

// LoadGameConfig reads a YAML game configuration on top of DefaultGameConfig.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading game config: %w", err)
	}
	cfg := DefaultGameConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing game config: %w", err)
	}
	return &cfg, nil
}
