package sim

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExampleConfigs verifies every shipped config in examples/ loads,
// validates and runs.
func TestExampleConfigs(t *testing.T) {
	tests := []struct {
		file    string
		variant Variant
		total   int
		seed    int64
	}{
		{"classic.yaml", VariantClassic, 100, 42},
		{"grudges-vs-hawks.yaml", VariantFull, 100, 7},
		{"mixed.yaml", VariantFull, 100, DefaultSeed},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			// GIVEN the example config
			cfg, err := LoadGameConfig(filepath.Join("..", "examples", tt.file))
			require.NoError(t, err)

			// THEN it validates with the expected shape
			require.NoError(t, cfg.Validate())
			assert.Equal(t, tt.variant, cfg.Variant.OrDefault())
			assert.Equal(t, tt.total, cfg.Total())
			assert.Equal(t, tt.seed, cfg.Seed)
			assert.Equal(t, DefaultRadius, cfg.Radius)

			// THEN a game built from it advances
			e, err := NewEngine(*cfg)
			require.NoError(t, err)
			snap := e.NextDay()
			assert.Equal(t, 1, snap.Day)
		})
	}
}

func TestExampleConfigs_AllListed(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("..", "examples", "*.yaml"))
	require.NoError(t, err)
	assert.Len(t, matches, 3, "add new example configs to TestExampleConfigs")
}
