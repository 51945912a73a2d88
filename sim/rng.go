package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SimulationKey identifies a reproducible game. Two engines built from the
// same key and an otherwise identical GameConfig produce identical snapshots.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Stream names one independent source of randomness in a game.
type Stream int

const (
	// StreamFood drives the daily food draw.
	StreamFood Stream = iota
	// StreamFate drives the survival and reproduction coin flips.
	StreamFate
	// StreamPlacement drives arena positions of new creatures.
	StreamPlacement

	numStreams
)

var streamNames = [numStreams]string{
	StreamFood:      "food",
	StreamFate:      "fate",
	StreamPlacement: "placement",
}

func (s Stream) String() string {
	if s < 0 || s >= numStreams {
		return fmt.Sprintf("Stream(%d)", int(s))
	}
	return streamNames[s]
}

// GameRNG holds one seeded *rand.Rand per Stream. Stream s is seeded with
// key XOR fnv1a64(s.String()), so how often one stream is drawn from (a
// bigger population eats more food draws) never shifts another.
//
// Not safe for concurrent use; the engine draws from one goroutine.
type GameRNG struct {
	key     SimulationKey
	streams [numStreams]*rand.Rand
}

// NewGameRNG seeds every stream from key.
func NewGameRNG(key SimulationKey) *GameRNG {
	g := &GameRNG{key: key}
	for s := Stream(0); s < numStreams; s++ {
		g.streams[s] = rand.New(rand.NewSource(streamSeed(key, s)))
	}
	return g
}

// Stream returns the generator for s. Panics on an unknown stream.
func (g *GameRNG) Stream(s Stream) *rand.Rand {
	if s < 0 || s >= numStreams {
		panic(fmt.Sprintf("sim: unknown rng %v", s))
	}
	return g.streams[s]
}

// Key returns the key every stream derives from.
func (g *GameRNG) Key() SimulationKey {
	return g.key
}

func streamSeed(key SimulationKey, s Stream) int64 {
	h := fnv.New64a()
	h.Write([]byte(s.String()))
	return int64(key) ^ int64(h.Sum64())
}
