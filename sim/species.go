package sim

import (
	"fmt"
	"strings"
)

// Species is the closed set of strategies a creature can play.
type Species int

const (
	// Hawk always behaves aggressively.
	Hawk Species = iota
	// Dove always behaves passively.
	Dove
	// Grudge behaves like a Dove until an individual acts as a Hawk toward it,
	// then retaliates against that individual for the rest of its life.
	Grudge
	// Detective behaves like a Dove until it identifies an individual as an
	// exploitable Dove, then behaves like a Hawk toward that individual.
	Detective
)

// AllSpecies lists every species in counting order.
var AllSpecies = []Species{Hawk, Dove, Grudge, Detective}

// Recall selects what a memory-capable species writes into its memory.
type Recall int

const (
	// RecallNone marks species without memory.
	RecallNone Recall = iota
	// RecallHawks stores individuals that acted as a Hawk toward the owner.
	RecallHawks
	// RecallDoves stores individuals identified as exploitable Doves.
	RecallDoves
)

// Traits is the capability record selected by a Species.
type Traits struct {
	Name string
	// Recall is RecallNone for species that never remember anyone.
	Recall Recall
	// Classic species are the only ones allowed in VariantClassic games.
	Classic bool
}

// traitTable is indexed by Species.
var traitTable = [...]Traits{
	Hawk:      {Name: "HAWK", Recall: RecallNone, Classic: true},
	Dove:      {Name: "DOVE", Recall: RecallNone, Classic: true},
	Grudge:    {Name: "GRUDGE", Recall: RecallHawks},
	Detective: {Name: "DETECTIVE", Recall: RecallDoves},
}

// Valid reports whether s is one of the four known species.
func (s Species) Valid() bool {
	return s >= Hawk && s <= Detective
}

// Traits returns the capability record of s. Panics on an invalid species.
func (s Species) Traits() Traits {
	if !s.Valid() {
		panic(fmt.Sprintf("sim: invalid species %d", int(s)))
	}
	return traitTable[s]
}

// Remembers reports whether creatures of this species carry a memory set.
func (s Species) Remembers() bool {
	return s.Valid() && traitTable[s].Recall != RecallNone
}

// String returns the uppercase identifier used on the wire ("HAWK", ...).
func (s Species) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Species(%d)", int(s))
	}
	return traitTable[s].Name
}

// MarshalText implements encoding.TextMarshaler.
func (s Species) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid species %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Species) UnmarshalText(text []byte) error {
	parsed, err := ParseSpecies(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSpecies converts a case-insensitive species name into a Species.
func ParseSpecies(name string) (Species, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for _, s := range AllSpecies {
		if traitTable[s].Name == upper {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown species %q; valid: HAWK, DOVE, GRUDGE, DETECTIVE", name)
}
