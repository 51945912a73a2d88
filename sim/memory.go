package sim

import "sort"

// Memory is an append-only set of creature identities.
type Memory struct {
	ids map[CreatureID]struct{}
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{ids: make(map[CreatureID]struct{})}
}

// Add inserts id and reports whether it was not already present.
func (m *Memory) Add(id CreatureID) bool {
	if _, ok := m.ids[id]; ok {
		return false
	}
	m.ids[id] = struct{}{}
	return true
}

// Contains reports whether id has been remembered.
func (m *Memory) Contains(id CreatureID) bool {
	_, ok := m.ids[id]
	return ok
}

// Len returns the number of remembered identities.
func (m *Memory) Len() int {
	return len(m.ids)
}

// IDs returns the remembered identities in ascending order.
func (m *Memory) IDs() []CreatureID {
	out := make([]CreatureID, 0, len(m.ids))
	for id := range m.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
