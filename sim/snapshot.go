package sim

// CreatureView is the wire projection of one creature.
type CreatureView struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type string  `json:"type"`
}

// Snapshot is an immutable projection of the board after a day.
// It holds no reference back to the board.
type Snapshot struct {
	Day        int            `json:"day"`
	Hawks      int            `json:"hawks"`
	Doves      int            `json:"doves"`
	Grudges    int            `json:"grudges"`
	Detectives int            `json:"detectives"`
	Creatures  []CreatureView `json:"creatures"`
}

// NewSnapshot projects the board's creatures in iteration order.
// Never mutates the board.
func NewSnapshot(b *Board, day int) Snapshot {
	s := Snapshot{
		Day:       day,
		Creatures: make([]CreatureView, 0, len(b.Creatures)),
	}
	for _, c := range b.Creatures {
		s.Creatures = append(s.Creatures, CreatureView{
			X:    c.Position.X,
			Y:    c.Position.Y,
			Type: c.Species().String(),
		})
		switch c.Species() {
		case Hawk:
			s.Hawks++
		case Dove:
			s.Doves++
		case Grudge:
			s.Grudges++
		case Detective:
			s.Detectives++
		}
	}
	return s
}

// Count returns the counter for species sp.
func (s Snapshot) Count(sp Species) int {
	switch sp {
	case Hawk:
		return s.Hawks
	case Dove:
		return s.Doves
	case Grudge:
		return s.Grudges
	case Detective:
		return s.Detectives
	}
	return 0
}

// Total returns the sum of the species counters.
func (s Snapshot) Total() int {
	return s.Hawks + s.Doves + s.Grudges + s.Detectives
}
