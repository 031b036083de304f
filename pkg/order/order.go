// Package order resolves display orders for router slots.
//
// A user may list slots in the names file ("Order": "5, 2, 9"). That list can
// be partial, contain duplicates, or name slots that do not exist. Resolution
// happens in two explicit steps:
//
//  1. [Clean] filters the list down to distinct, in-universe slots.
//  2. [Resolve] ranks the cleaned slots first and appends the rest ascending,
//     producing a total [Display]; [Restrict] ranks only the cleaned slots.
//
// Both results are immutable bijections between slots and dense 0-based ranks.
package order

import (
	"slices"
	"strconv"
	"strings"

	"github.com/hxmidi/midimap/pkg/errors"
	"github.com/hxmidi/midimap/pkg/slot"
)

// Spec is a user-supplied ordering of slots, possibly partial.
// A nil Spec means no ordering was supplied.
type Spec []slot.Slot

// ErrNoOrder is returned when a projection requires an ordering and none is available.
var ErrNoOrder = errors.New(errors.ErrCodeNoOrder, "no order available")

// ParseSpec parses a comma-separated list of slot numbers.
//
// Whitespace around elements is ignored and empty elements are dropped.
// A non-integer element rejects the whole list. Values outside
// [1, slot.Count] are discarded, including ones too large for an int; if
// nothing remains, ParseSpec returns nil.
func ParseSpec(s string) (Spec, error) {
	var out Spec
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidOrder, err, "order element %q is not an integer", part)
		}
		if v := slot.Slot(n); v.Valid() {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// String formats the order as it appears in a names file.
func (s Spec) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}

// Clean keeps the first occurrence of every listed slot that belongs to
// universe, preserving the listed order.
func Clean(spec Spec, universe []slot.Slot) []slot.Slot {
	allowed := make(map[slot.Slot]bool, len(universe))
	for _, s := range universe {
		allowed[s] = true
	}

	seen := make(map[slot.Slot]bool, len(spec))
	out := make([]slot.Slot, 0, len(spec))
	for _, s := range spec {
		if !allowed[s] || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Resolve returns a total display order over universe: the cleaned list
// first, then every unlisted slot in ascending order. An absent or empty
// list yields the natural ascending order.
func Resolve(spec Spec, universe []slot.Slot) Display {
	listed := Clean(spec, universe)
	placed := make(map[slot.Slot]bool, len(listed))
	for _, s := range listed {
		placed[s] = true
	}

	rest := make([]slot.Slot, 0, len(universe)-len(listed))
	for _, s := range universe {
		if !placed[s] {
			rest = append(rest, s)
		}
	}
	slices.Sort(rest)

	return newDisplay(append(listed, rest...))
}

// Restrict returns a display order over exactly the cleaned list.
// It returns [ErrNoOrder] if nothing survives cleaning.
func Restrict(spec Spec) (Display, error) {
	listed := Clean(spec, slot.All())
	if len(listed) == 0 {
		return Display{}, ErrNoOrder
	}
	return newDisplay(listed), nil
}
