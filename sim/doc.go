// Package sim provides the core day-by-day engine for evogame, a population
// game between Hawks, Doves, Grudges and Detectives on a circular arena.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - creature.go: food, survival and reproduction rules, and the memory capability
//   - board.go: the arena and the live population, the only place new creatures are minted
//   - engine.go: NextDay, which distributes food, runs the memory pass, and builds the next generation
//
// # Architecture
//
// Species behavior is selected from a capability table (species.go) rather
// than by type inspection; only species whose Traits carry a Recall own a
// Memory. Memory entries are CreatureIDs, never pointers.
//
// All randomness flows from one SimulationKey through a GameRNG
// (rng.go) with isolated streams for food, fate and placement, so a game is
// reproducible from its GameConfig alone.
//
// Sub-packages:
//   - sim/trace/: per-day decision recording and summaries
//   - sim/history/: per-day population counts and CSV export
//   - sim/session/: one mutex-guarded game for the HTTP API
package sim
