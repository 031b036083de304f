package router

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/hxmidi/midimap/pkg/slot"
)

// Route is one decoded router entry: an input and the outputs it feeds,
// in ascending order.
type Route struct {
	Input   slot.Slot
	Outputs []slot.Slot
}

// Edge is a single input→output connection.
type Edge struct {
	Input  slot.Slot
	Output slot.Slot
}

// Mapping is the decoded connectivity relation, one Route per successfully
// decoded input, in input order. The zero value is an empty mapping.
type Mapping struct {
	routes []Route
}

// NewMapping builds a Mapping from routes. Routes are sorted by input and
// output lists are copied and sorted; a later route for the same input
// replaces an earlier one.
func NewMapping(routes ...Route) Mapping {
	byInput := make(map[slot.Slot]Route, len(routes))
	for _, r := range routes {
		outs := slices.Clone(r.Outputs)
		slices.Sort(outs)
		byInput[r.Input] = Route{Input: r.Input, Outputs: slices.Compact(outs)}
	}
	out := make([]Route, 0, len(byInput))
	for _, r := range byInput {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Route) int { return int(a.Input) - int(b.Input) })
	return Mapping{routes: out}
}

// Len returns the number of decoded inputs.
func (m Mapping) Len() int { return len(m.routes) }

// Routes returns a copy of the routes in input order.
func (m Mapping) Routes() []Route {
	out := make([]Route, len(m.routes))
	for i, r := range m.routes {
		out[i] = Route{Input: r.Input, Outputs: slices.Clone(r.Outputs)}
	}
	return out
}

// Inputs returns the decoded input slots in order.
func (m Mapping) Inputs() []slot.Slot {
	out := make([]slot.Slot, len(m.routes))
	for i, r := range m.routes {
		out[i] = r.Input
	}
	return out
}

// Outputs returns the outputs connected to in, and whether in was decoded.
func (m Mapping) Outputs(in slot.Slot) ([]slot.Slot, bool) {
	for _, r := range m.routes {
		if r.Input == in {
			return slices.Clone(r.Outputs), true
		}
	}
	return nil, false
}

// Edges flattens the mapping into input→output pairs, ordered by input then output.
func (m Mapping) Edges() []Edge {
	var out []Edge
	for _, r := range m.routes {
		for _, o := range r.Outputs {
			out = append(out, Edge{Input: r.Input, Output: o})
		}
	}
	return out
}

// EdgeCount returns the total number of connections.
func (m Mapping) EdgeCount() int {
	n := 0
	for _, r := range m.routes {
		n += len(r.Outputs)
	}
	return n
}

// String renders the route as a mapping-list line, e.g.
// "Input  3 -> Output 1, Output 15".
func (r Route) String() string {
	if len(r.Outputs) == 0 {
		return fmt.Sprintf("Input %2d -> None", r.Input)
	}
	parts := make([]string, len(r.Outputs))
	for i, o := range r.Outputs {
		parts[i] = fmt.Sprintf("Output %d", o)
	}
	return fmt.Sprintf("Input %2d -> %s", r.Input, strings.Join(parts, ", "))
}

// Lines returns the human-readable mapping list, one line per decoded input.
func (m Mapping) Lines() []string {
	out := make([]string, len(m.routes))
	for i, r := range m.routes {
		out[i] = r.String()
	}
	return out
}

// Adjacency returns an n×n 0/1 matrix with rows indexed by input and columns
// by output (slot s at index s-1). Connections outside 1..n are dropped.
func (m Mapping) Adjacency(n int) *mat.Dense {
	a := mat.NewDense(n, n, nil)
	for _, e := range m.Edges() {
		if int(e.Input) < 1 || int(e.Input) > n || int(e.Output) < 1 || int(e.Output) > n {
			continue
		}
		a.Set(int(e.Input)-1, int(e.Output)-1, 1)
	}
	return a
}
