package record

import (
	"slices"
)

// Schema is the ordered set of slot names shared by every record of a plan.
// Slots are appended while a plan is built and never removed.
type Schema struct {
	names []string
	index map[string]int
}

// NewSchema creates a schema with the given slots, in order. Duplicate names
// map to their first slot.
func NewSchema(names ...string) *Schema {
	s := &Schema{index: make(map[string]int, len(names))}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add returns the slot for name, appending a new slot if it does not exist yet.
func (s *Schema) Add(name string) int {
	if idx, ok := s.index[name]; ok {
		return idx
	}
	s.names = append(s.names, name)
	s.index[name] = len(s.names) - 1
	return len(s.names) - 1
}

// Index returns the slot for name.
func (s *Schema) Index(name string) (int, bool) {
	idx, ok := s.index[name]
	return idx, ok
}

// Len is the number of slots.
func (s *Schema) Len() int {
	return len(s.names)
}

// Names returns a copy of the slot names in slot order.
func (s *Schema) Names() []string {
	return slices.Clone(s.names)
}
