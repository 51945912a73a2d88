package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/evogame/sim"
	"github.com/inference-sim/evogame/sim/history"
	"github.com/inference-sim/evogame/sim/trace"
)

var (
	// CLI flags for the starting population
	hawks      int
	doves      int
	grudges    int
	detectives int

	days       int     // Number of days to simulate
	seed       int64   // Seed for every random draw in the game
	radius     float64 // Arena radius
	variant    string  // Rule set: classic or full
	configPath string  // Optional YAML game config
	outputDir  string  // Directory for history.csv and config.yaml
	traceLevel string  // Trace verbosity: none, days, memories
	runLog     string  // Log verbosity level
)

// runCmd plays a game headless for a fixed number of days
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a game for a fixed number of days",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(runLog)

		cli := sim.GameConfig{
			Hawks:      hawks,
			Doves:      doves,
			Grudges:    grudges,
			Detectives: detectives,
			Radius:     radius,
			Seed:       seed,
			Variant:    sim.Variant(variant),
		}
		cfg, err := resolveGameConfig(configPath, cli, cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("unable to read game config; %v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		opts := runOptions{Days: days, OutputDir: outputDir, TraceLevel: trace.TraceLevel(traceLevel)}
		if err := runGame(cfg, opts, os.Stdout); err != nil {
			logrus.Fatalf("game failed; %v", err)
		}
		logrus.Info("Game complete.")
	},
}

// resolveGameConfig starts from the config file (or defaults) and applies
// every flag the user set explicitly.
func resolveGameConfig(path string, cli sim.GameConfig, changed func(string) bool) (sim.GameConfig, error) {
	cfg := sim.DefaultGameConfig()
	if path != "" {
		loaded, err := sim.LoadGameConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	if changed("hawks") {
		cfg.Hawks = cli.Hawks
	}
	if changed("doves") {
		cfg.Doves = cli.Doves
	}
	if changed("grudges") {
		cfg.Grudges = cli.Grudges
	}
	if changed("detectives") {
		cfg.Detectives = cli.Detectives
	}
	if changed("radius") {
		cfg.Radius = cli.Radius
	}
	if changed("seed") {
		cfg.Seed = cli.Seed
	}
	if changed("variant") {
		cfg.Variant = cli.Variant
	}
	return cfg, cfg.Validate()
}

type runOptions struct {
	Days       int
	OutputDir  string
	TraceLevel trace.TraceLevel
}

// runReport is printed to stdout when a run finishes.
type runReport struct {
	Days       int                 `json:"days"`
	Seed       int64               `json:"seed"`
	Variant    sim.Variant         `json:"variant"`
	Final      history.DayStats    `json:"final"`
	WallTimeMs int64               `json:"wall_time_ms"`
	Trace      *trace.TraceSummary `json:"trace,omitempty"`
}

func runGame(cfg sim.GameConfig, opts runOptions, out io.Writer) error {
	if opts.Days < 0 {
		return fmt.Errorf("days must be >= 0, got %d", opts.Days)
	}
	engine, err := sim.NewEngine(cfg)
	if err != nil {
		return err
	}
	if opts.TraceLevel.Enabled() {
		engine.SetTrace(trace.NewSimulationTrace(trace.TraceConfig{Level: opts.TraceLevel}))
	}

	om, err := history.NewOutputManager(opts.OutputDir)
	if err != nil {
		return err
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		return err
	}

	logrus.Infof("Starting game: hawks=%d doves=%d grudges=%d detectives=%d variant=%s seed=%d days=%d",
		cfg.Hawks, cfg.Doves, cfg.Grudges, cfg.Detectives, engine.Variant(), cfg.Seed, opts.Days)
	startTime := time.Now()

	last := engine.Snapshot()
	if err := om.WriteDay(history.FromSnapshot(last)); err != nil {
		return err
	}
	for d := 0; d < opts.Days; d++ {
		last = engine.NextDay()
		if err := om.WriteDay(history.FromSnapshot(last)); err != nil {
			return err
		}
	}

	report := runReport{
		Days:       last.Day,
		Seed:       cfg.Seed,
		Variant:    engine.Variant(),
		Final:      history.FromSnapshot(last),
		WallTimeMs: time.Since(startTime).Milliseconds(),
	}
	if engine.Trace() != nil {
		report.Trace = trace.Summarize(engine.Trace())
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	fmt.Fprintln(out, "=== Game Summary ===")
	fmt.Fprintln(out, string(data))
	if om != nil {
		logrus.Infof("history written to %s", om.Dir())
	}
	return nil
}

func init() {
	runCmd.Flags().IntVar(&hawks, "hawks", 0, "Initial number of hawks")
	runCmd.Flags().IntVar(&doves, "doves", 0, "Initial number of doves")
	runCmd.Flags().IntVar(&grudges, "grudges", 0, "Initial number of grudges")
	runCmd.Flags().IntVar(&detectives, "detectives", 0, "Initial number of detectives")
	runCmd.Flags().IntVar(&days, "days", 100, "Number of days to simulate")
	runCmd.Flags().Int64Var(&seed, "seed", sim.DefaultSeed, "Seed for all random draws")
	runCmd.Flags().Float64Var(&radius, "radius", sim.DefaultRadius, "Arena radius")
	runCmd.Flags().StringVar(&variant, "variant", string(sim.VariantFull), "Rule set (classic, full)")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML game config; explicit flags override it")
	runCmd.Flags().StringVar(&outputDir, "output", "", "Directory for history.csv and config.yaml")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trace level (none, days, memories)")
	runCmd.Flags().StringVar(&runLog, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
