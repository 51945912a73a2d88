// sim/engine.go
package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/evogame/sim/trace"
)

// Engine holds the day counter, the board and the game's randomness, and
// advances the game one day at a time.
//
// Thread-safety: NOT thread-safe. Callers must serialize NextDay.
type Engine struct {
	Day   int
	Board *Board

	variant Variant
	rng     *GameRNG
	trace   *trace.SimulationTrace
}

// NewEngine validates cfg and builds a board populated in species order
// (hawks, doves, grudges, detectives).
func NewEngine(cfg GameConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewGameRNG(NewSimulationKey(cfg.Seed))
	board := NewBoard(cfg.Radius, rng.Stream(StreamPlacement))
	for _, s := range AllSpecies {
		board.Populate(s, cfg.Count(s))
	}
	e := &Engine{
		Board:   board,
		variant: cfg.Variant.OrDefault(),
		rng:     rng,
	}
	logrus.Debugf("[day %05d] game created: variant=%s seed=%d radius=%.1f population=%d",
		e.Day, e.variant, cfg.Seed, cfg.Radius, board.Len())
	return e, nil
}

// SetTrace attaches a trace; nil detaches it.
func (e *Engine) SetTrace(st *trace.SimulationTrace) {
	e.trace = st
}

// Trace returns the attached trace, or nil.
func (e *Engine) Trace() *trace.SimulationTrace {
	return e.trace
}

// Variant returns the rule set the engine runs.
func (e *Engine) Variant() Variant {
	return e.variant
}

// Key returns the key all of this game's randomness derives from.
func (e *Engine) Key() SimulationKey {
	return e.rng.Key()
}

// Snapshot projects the current board without advancing the day.
func (e *Engine) Snapshot() Snapshot {
	return NewSnapshot(e.Board, e.Day)
}

// memoryWrite is a memory update deferred until every pair of the day has
// been evaluated.
type memoryWrite struct {
	observer *Creature
	subject  *Creature
	kind     trace.MemoryKind
}

// NextDay runs one full day and returns the snapshot of the new generation:
//  1. every creature's food is reset and redrawn
//  2. memory-capable creatures observe everyone else (full variant only)
//  3. starving creatures are dropped
//  4. each survivor may spawn one offspring, placed right after it
//
// Offspring start with no food and empty memory and take no part in the day
// they are born on.
func (e *Engine) NextDay() Snapshot {
	e.Day++
	e.distributeFood()

	var formed []memoryWrite
	if e.variant == VariantFull {
		formed = e.applyMemories(e.formMemories())
	}

	fate := e.rng.Stream(StreamFate)
	next := make([]*Creature, 0, len(e.Board.Creatures))
	births, deaths := 0, 0
	for _, c := range e.Board.Creatures {
		if !c.Survives(fate) {
			deaths++
			continue
		}
		next = append(next, c)
		if c.Reproduces(fate) {
			next = append(next, e.Board.Spawn(c.Species()))
			births++
		}
	}
	e.Board.replace(next)

	snap := NewSnapshot(e.Board, e.Day)
	logrus.Debugf("[day %05d] population=%d births=%d deaths=%d memories=%d",
		e.Day, snap.Total(), births, deaths, len(formed))
	e.recordDay(snap, births, deaths, formed)
	return snap
}

func (e *Engine) distributeFood() {
	food := e.rng.Stream(StreamFood)
	for _, c := range e.Board.Creatures {
		c.ResetFood()
		c.AddFood(drawFood(food))
	}
}

// drawFood returns 2, 1 or 0.5 with probability 1/3 each.
func drawFood(rng *rand.Rand) float64 {
	r := rng.Float64()
	switch {
	case r < 1.0/3.0:
		return 2
	case r < 2.0/3.0:
		return 1
	default:
		return 0.5
	}
}

// formMemories evaluates every ordered pair against the memory state at the
// start of the day. Nothing is written here.
func (e *Engine) formMemories() []memoryWrite {
	creatures := e.Board.Creatures
	var writes []memoryWrite
	for _, c := range creatures {
		recall := c.Species().Traits().Recall
		if recall == RecallNone {
			continue
		}
		for _, other := range creatures {
			if other.ID == c.ID || c.BehavesAsHawkAgainst(other) {
				continue
			}
			hawkish := other.ActsAsHawkToward(c)
			switch {
			case recall == RecallHawks && hawkish:
				writes = append(writes, memoryWrite{observer: c, subject: other, kind: trace.MemoryHawk})
			case recall == RecallDoves && !hawkish:
				writes = append(writes, memoryWrite{observer: c, subject: other, kind: trace.MemoryDove})
			}
		}
	}
	return writes
}

// applyMemories commits pending writes and returns the ones that actually
// grew a memory.
func (e *Engine) applyMemories(writes []memoryWrite) []memoryWrite {
	applied := writes[:0]
	for _, w := range writes {
		var added bool
		switch w.kind {
		case trace.MemoryHawk:
			added = w.observer.RememberHawk(w.subject)
		case trace.MemoryDove:
			added = w.observer.RememberDove(w.subject)
		}
		if added {
			applied = append(applied, w)
		}
	}
	return applied
}

func (e *Engine) recordDay(snap Snapshot, births, deaths int, formed []memoryWrite) {
	if e.trace == nil || !e.trace.Config.Level.Enabled() {
		return
	}
	record := trace.DayRecord{
		Day:         snap.Day,
		Deaths:      deaths,
		Births:      births,
		NewMemories: len(formed),
		Population:  snap.Total(),
		BySpecies:   make(map[string]int, len(AllSpecies)),
	}
	for _, s := range AllSpecies {
		record.BySpecies[s.String()] = snap.Count(s)
	}
	if e.trace.RecordsMemories() {
		record.Memories = make([]trace.MemoryRecord, 0, len(formed))
		for _, w := range formed {
			record.Memories = append(record.Memories, trace.MemoryRecord{
				Day:             snap.Day,
				Observer:        uint64(w.observer.ID),
				ObserverSpecies: w.observer.Species().String(),
				Subject:         uint64(w.subject.ID),
				SubjectSpecies:  w.subject.Species().String(),
				Kind:            w.kind,
			})
		}
	}
	e.trace.RecordDay(record)
}
