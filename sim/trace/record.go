// Package trace provides per-day decision recording for game analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// MemoryKind names which memory a new record went into.
type MemoryKind string

const (
	// MemoryHawk is written by a Grudge that saw someone act as a Hawk.
	MemoryHawk MemoryKind = "hawk"
	// MemoryDove is written by a Detective that found an exploitable Dove.
	MemoryDove MemoryKind = "dove"
)

// MemoryRecord captures one new entry in a creature's memory.
type MemoryRecord struct {
	Day             int
	Observer        uint64
	ObserverSpecies string
	Subject         uint64
	SubjectSpecies  string
	Kind            MemoryKind
}

// DayRecord captures the outcome of one simulated day.
type DayRecord struct {
	Day         int
	Deaths      int
	Births      int
	NewMemories int
	Population  int            // population after the day
	BySpecies   map[string]int // population after the day, per species name
	Memories    []MemoryRecord // nil unless TraceLevelMemories
}
