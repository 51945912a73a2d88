package sim

import "math/rand"

// Board owns the arena and the live population.
// The creature slice is read-only during a day; NextDay builds the next
// generation in a separate slice and swaps it in.
type Board struct {
	Radius    float64
	Creatures []*Creature

	nextID    CreatureID
	placement *rand.Rand
}

// NewBoard creates an empty board whose positions are drawn from placement.
func NewBoard(radius float64, placement *rand.Rand) *Board {
	return &Board{
		Radius:    radius,
		Creatures: make([]*Creature, 0),
		placement: placement,
	}
}

// RandomPosition draws a fresh uniform position inside the arena disk.
func (b *Board) RandomPosition() Position {
	return RandomPointInDisk(b.placement, b.Radius)
}

// Spawn mints a new creature of the given species at a random position.
// The creature is not added to the board.
func (b *Board) Spawn(species Species) *Creature {
	id := b.nextID
	b.nextID++
	return NewCreature(id, species, b.RandomPosition())
}

// Populate appends n freshly spawned creatures of the given species.
func (b *Board) Populate(species Species, n int) {
	for i := 0; i < n; i++ {
		b.Creatures = append(b.Creatures, b.Spawn(species))
	}
}

// Len returns the live population size.
func (b *Board) Len() int {
	return len(b.Creatures)
}

// CountBySpecies returns the number of live creatures per species.
func (b *Board) CountBySpecies() map[Species]int {
	counts := make(map[Species]int, len(AllSpecies))
	for _, c := range b.Creatures {
		counts[c.Species()]++
	}
	return counts
}

// replace swaps in the next generation.
func (b *Board) replace(next []*Creature) {
	b.Creatures = next
}
