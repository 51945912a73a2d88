package history

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/evogame/sim"
)

// OutputManager writes a run's artifacts into one directory:
// history.csv (one row per day) and config.yaml (the starting config).
type OutputManager struct {
	dir         string
	historyFile *os.File
	history     *Writer
}

// NewOutputManager creates the output directory and opens history.csv.
// Returns nil if dir is empty (output disabled); all methods accept a nil
// receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "history.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating history.csv: %w", err)
	}
	return &OutputManager{dir: dir, historyFile: f, history: NewWriter(f)}, nil
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the starting configuration as YAML.
func (om *OutputManager) WriteConfig(cfg sim.GameConfig) error {
	if om == nil {
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "config.yaml"), data, 0o644); err != nil {
		return fmt.Errorf("writing config.yaml: %w", err)
	}
	return nil
}

// WriteDay appends one day to history.csv.
func (om *OutputManager) WriteDay(stats DayStats) error {
	if om == nil {
		return nil
	}
	return om.history.Write(stats)
}

// Close flushes and closes all files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.historyFile.Close()
}
