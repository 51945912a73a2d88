// Package session holds the one game a server drives. Every operation is
// serialized behind a mutex, so concurrent requests never interleave within
// a day.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/evogame/sim"
	"github.com/inference-sim/evogame/sim/history"
	"github.com/inference-sim/evogame/sim/trace"
)

// ErrUninitialized is returned when a game is driven before Start.
var ErrUninitialized = errors.New("game has not been started")

// StepObserver is called with every new snapshot, in day order, while the
// game lock is held. Observers must not call back into the Game.
type StepObserver func(gameID uuid.UUID, snap sim.Snapshot)

// Game owns at most one running engine.
type Game struct {
	mu         sync.Mutex
	id         uuid.UUID
	config     sim.GameConfig
	engine     *sim.Engine
	current    sim.Snapshot
	history    []history.DayStats
	traceLevel trace.TraceLevel
	observers  []StepObserver
}

// NewGame creates a session with no game started.
func NewGame() *Game {
	return &Game{traceLevel: trace.TraceLevelNone}
}

// SetTraceLevel selects the trace level for games started afterwards.
func (g *Game) SetTraceLevel(level trace.TraceLevel) error {
	if !trace.IsValidTraceLevel(string(level)) {
		return fmt.Errorf("unknown trace level %q", level)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.traceLevel = level
	return nil
}

// Subscribe registers an observer for every subsequent step.
func (g *Game) Subscribe(fn StepObserver) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observers = append(g.observers, fn)
}

// Start replaces any previous game with a new one built from cfg.
// On a validation error the previous game is left untouched.
func (g *Game) Start(cfg sim.GameConfig) (uuid.UUID, error) {
	engine, err := sim.NewEngine(cfg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("starting game: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.traceLevel.Enabled() {
		engine.SetTrace(trace.NewSimulationTrace(trace.TraceConfig{Level: g.traceLevel}))
	}
	if g.engine != nil {
		logrus.Infof("discarding game %s at day %d", g.id, g.engine.Day)
	}
	g.id = uuid.New()
	g.config = cfg
	g.engine = engine
	g.current = engine.Snapshot()
	g.history = []history.DayStats{history.FromSnapshot(g.current)}
	logrus.Infof("started game %s: hawks=%d doves=%d grudges=%d detectives=%d variant=%s seed=%d",
		g.id, cfg.Hawks, cfg.Doves, cfg.Grudges, cfg.Detectives, engine.Variant(), cfg.Seed)
	return g.id, nil
}

// Step advances the game by one day.
func (g *Game) Step() (sim.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.engine == nil {
		return sim.Snapshot{}, ErrUninitialized
	}
	snap := g.engine.NextDay()
	g.current = snap
	g.history = append(g.history, history.FromSnapshot(snap))
	for _, fn := range g.observers {
		fn(g.id, snap)
	}
	return snap, nil
}

// Current returns the latest snapshot without advancing.
func (g *Game) Current() (sim.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.engine == nil {
		return sim.Snapshot{}, ErrUninitialized
	}
	return g.current, nil
}

// History returns the per-day counts since start, day 0 included.
func (g *Game) History() ([]history.DayStats, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.engine == nil {
		return nil, ErrUninitialized
	}
	out := make([]history.DayStats, len(g.history))
	copy(out, g.history)
	return out, nil
}

// TraceSummary summarizes the current game's trace; empty when tracing is off.
func (g *Game) TraceSummary() (*trace.TraceSummary, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.engine == nil {
		return nil, ErrUninitialized
	}
	return trace.Summarize(g.engine.Trace()), nil
}

// Info describes the running game.
type Info struct {
	ID     uuid.UUID      `json:"game_id"`
	Day    int            `json:"day"`
	Config sim.GameConfig `json:"config"`
}

// Info returns the id, day and starting config of the running game.
func (g *Game) Info() (Info, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.engine == nil {
		return Info{}, ErrUninitialized
	}
	return Info{ID: g.id, Day: g.engine.Day, Config: g.config}, nil
}

// Reset drops the running game, if any.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.engine != nil {
		logrus.Infof("reset game %s at day %d", g.id, g.engine.Day)
	}
	g.id = uuid.Nil
	g.engine = nil
	g.current = sim.Snapshot{}
	g.history = nil
}
