package order

import (
	"slices"

	"github.com/hxmidi/midimap/pkg/slot"
)

// Display is a bijection between slots and dense ranks 0..Len()-1.
// The zero value is an empty display.
type Display struct {
	slots []slot.Slot
	ranks map[slot.Slot]int
}

func newDisplay(ordered []slot.Slot) Display {
	ranks := make(map[slot.Slot]int, len(ordered))
	for i, s := range ordered {
		ranks[s] = i
	}
	return Display{slots: ordered, ranks: ranks}
}

// Rank returns the 0-based rank of s and whether s is part of the display.
func (d Display) Rank(s slot.Slot) (int, bool) {
	r, ok := d.ranks[s]
	return r, ok
}

// Contains reports whether s has a rank.
func (d Display) Contains(s slot.Slot) bool {
	_, ok := d.ranks[s]
	return ok
}

// Slots returns the slots in rank order.
func (d Display) Slots() []slot.Slot {
	return slices.Clone(d.slots)
}

// Len returns the number of ranked slots.
func (d Display) Len() int { return len(d.slots) }

// Equal reports whether both displays assign the same rank to every slot.
func (d Display) Equal(other Display) bool {
	return slices.Equal(d.slots, other.slots)
}
