package state

import (
	"fmt"

	"github.com/talgya/hexreign/internal/rules"
)

// IDSource is an injected monotonic id allocator. One source per game session
// keeps concurrent games independent and lets tests reset deterministically.
type IDSource struct {
	next uint64
}

// NewIDSource creates a source starting at 1.
func NewIDSource() *IDSource {
	return &IDSource{next: 1}
}

// Next returns the next id and advances the sequence.
func (s *IDSource) Next() uint64 {
	id := s.next
	s.next++
	return id
}

// Reset rewinds the sequence to 1.
func (s *IDSource) Reset() {
	s.next = 1
}

// Namer hands out settlement names in each tribe's fixed founding order,
// switching to the shared fallback pool once a tribe's list is exhausted.
// Sequential state is per session, keyed by tribe id; Reset gives a fresh
// game an untouched name order.
type Namer struct {
	catalog  *rules.Catalog
	index    map[TribeID]int
	fallback int
}

// NewNamer creates a namer over the given catalog.
func NewNamer(catalog *rules.Catalog) *Namer {
	return &Namer{
		catalog: catalog,
		index:   make(map[TribeID]int),
	}
}

// Next returns the next settlement name for the tribe.
func (n *Namer) Next(tribe TribeID, kind rules.TribeKind) string {
	names := n.catalog.Tribe(kind).SettlementNames
	i := n.index[tribe]
	n.index[tribe] = i + 1
	if i < len(names) {
		return names[i]
	}
	if n.fallback < len(n.catalog.FallbackNames) {
		name := n.catalog.FallbackNames[n.fallback]
		n.fallback++
		return name
	}
	// Both pools exhausted; numbered generic names from here on.
	return fmt.Sprintf("Outpost %d", i+1)
}

// Reset clears all per-tribe name progress.
func (n *Namer) Reset() {
	n.index = make(map[TribeID]int)
	n.fallback = 0
}
