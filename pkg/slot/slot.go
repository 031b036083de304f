// Package slot defines the fixed port numbering shared by router inputs and outputs.
//
// The router hardware exposes 15 ports per side. The same numbering space
// (1 through [Count]) is used for inputs and outputs, so a single [Slot] type
// serves both.
package slot

import "strconv"

// Count is the number of ports per side of the router.
const Count = 15

// Slot is a 1-based port number.
type Slot int

// Valid reports whether s lies in [1, Count].
func (s Slot) Valid() bool { return s >= 1 && s <= Count }

func (s Slot) String() string { return strconv.Itoa(int(s)) }

// All returns the full universe 1..Count in ascending order.
func All() []Slot {
	return Range(Count)
}

// Range returns 1..n in ascending order.
func Range(n int) []Slot {
	out := make([]Slot, n)
	for i := range out {
		out[i] = Slot(i + 1)
	}
	return out
}
