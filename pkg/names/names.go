// Package names holds the optional per-slot display labels.
package names

import (
	"fmt"

	"github.com/hxmidi/midimap/pkg/slot"
)

// Table maps slots to display names. A slot may be absent, or present with
// an empty name; both count as unnamed for [Table.Named]. A nil Table is
// valid and empty.
type Table map[slot.Slot]string

// Get returns the name for s and whether s has an entry at all.
func (t Table) Get(s slot.Slot) (string, bool) {
	n, ok := t[s]
	return n, ok
}

// Named reports whether s has a non-empty name.
func (t Table) Named(s slot.Slot) bool {
	return t[s] != ""
}

// LabelOr returns the name for s, or the synthetic "Node {s}" label when s
// has no entry. A present-but-empty name is returned unchanged.
func (t Table) LabelOr(s slot.Slot) string {
	if n, ok := t[s]; ok {
		return n
	}
	return fmt.Sprintf("Node %d", s)
}

// NamedCount returns how many slots carry a non-empty name.
func (t Table) NamedCount() int {
	n := 0
	for _, v := range t {
		if v != "" {
			n++
		}
	}
	return n
}
