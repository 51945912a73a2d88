package sim

import "math/rand"

// CreatureID identifies a creature for its whole lifetime.
// IDs are minted by a Board in creation order and never reused within a game.
type CreatureID uint64

// Creature is a single agent on the board.
// Position and species are fixed at creation; food is rewritten every day.
type Creature struct {
	ID       CreatureID
	Position Position

	species Species
	food    float64
	// memory is nil unless species.Remembers().
	memory *Memory
}

// NewCreature builds a creature with zero food and, for memory-capable
// species, an empty memory.
func NewCreature(id CreatureID, species Species, pos Position) *Creature {
	c := &Creature{ID: id, Position: pos, species: species}
	if species.Remembers() {
		c.memory = NewMemory()
	}
	return c
}

// Species returns the creature's species.
func (c *Creature) Species() Species {
	return c.species
}

// Food returns the food gathered today.
func (c *Creature) Food() float64 {
	return c.food
}

// ResetFood sets food back to zero. Called at the start of every day.
func (c *Creature) ResetFood() {
	c.food = 0
}

// AddFood adds amount to today's food. Negative amounts are ignored so food
// never drops below zero.
func (c *Creature) AddFood(amount float64) {
	if amount <= 0 {
		return
	}
	c.food += amount
}

// Survives decides whether the creature lives to the next day.
// At least one unit of food always survives, half a unit survives on a coin
// flip, anything less starves. rng is only drawn from on the coin flip.
func (c *Creature) Survives(rng *rand.Rand) bool {
	if c.food >= 1 {
		return true
	}
	if c.food == 0.5 {
		return rng.Float64() < 0.5
	}
	return false
}

// Reproduces decides whether a surviving creature spawns one offspring.
// Two units always reproduce, one and a half reproduce on a coin flip.
func (c *Creature) Reproduces(rng *rand.Rand) bool {
	if c.food >= 2 {
		return true
	}
	if c.food == 1.5 {
		return rng.Float64() < 0.5
	}
	return false
}

// RememberHawk records that other acted as a Hawk toward c.
// Only Grudges keep this record; for other species it is a no-op.
// Reports whether the memory grew.
func (c *Creature) RememberHawk(other *Creature) bool {
	if c.memory == nil || c.species.Traits().Recall != RecallHawks {
		return false
	}
	return c.memory.Add(other.ID)
}

// RememberDove records that other acted as a Dove toward c.
// Only Detectives keep this record, and only actual Doves are worth
// remembering as exploitable; every other call is a no-op.
// Reports whether the memory grew.
func (c *Creature) RememberDove(other *Creature) bool {
	if c.memory == nil || c.species.Traits().Recall != RecallDoves {
		return false
	}
	if other.species != Dove {
		return false
	}
	return c.memory.Add(other.ID)
}

// BehavesAsHawkAgainst reports whether c has other in its memory.
// A Grudge punishes those it remembers; a Detective exploits them.
// Always false for species without memory.
func (c *Creature) BehavesAsHawkAgainst(other *Creature) bool {
	if c.memory == nil {
		return false
	}
	return c.memory.Contains(other.ID)
}

// ActsAsHawkToward reports how c behaves toward other today: Hawks always
// act as Hawks, Doves never do, and memory-capable species act as Hawks
// exactly toward the individuals in their memory.
func (c *Creature) ActsAsHawkToward(other *Creature) bool {
	switch c.species {
	case Hawk:
		return true
	case Dove:
		return false
	default:
		return c.BehavesAsHawkAgainst(other)
	}
}

// MemorySize returns how many individuals c remembers.
func (c *Creature) MemorySize() int {
	if c.memory == nil {
		return 0
	}
	return c.memory.Len()
}

// Remembered returns the remembered identities in ascending order, or nil
// for species without memory.
func (c *Creature) Remembered() []CreatureID {
	if c.memory == nil {
		return nil
	}
	return c.memory.IDs()
}
