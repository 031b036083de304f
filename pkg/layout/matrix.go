package layout

import (
	"github.com/hxmidi/midimap/pkg/names"
	"github.com/hxmidi/midimap/pkg/order"
	"github.com/hxmidi/midimap/pkg/router"
	"github.com/hxmidi/midimap/pkg/slot"
)

// Tick is one axis position of the matrix view. The same ticks label both
// axes: inputs along x, outputs along y.
type Tick struct {
	Index int
	Slot  slot.Slot
	Label string
}

// Cell is a plotted connection: X is the rank of the input, Y the rank of
// the output.
type Cell struct {
	X, Y   int
	Input  slot.Slot
	Output slot.Slot
}

// MatrixLayout is the adjacency-matrix projection of a mapping.
type MatrixLayout struct {
	Axis  []Tick
	Cells []Cell
}

// Size returns the number of rows (and columns) of the matrix.
func (l MatrixLayout) Size() int { return len(l.Axis) }

// Matrix computes the matrix projection restricted to the slots of spec.
//
// Slots outside spec are invisible, including as mapping endpoints. Every
// displayed slot is labeled: its name, or "Node {n}" when it has none.
// Matrix returns order.ErrNoOrder when spec has no usable slot.
func Matrix(m router.Mapping, spec order.Spec, t names.Table) (MatrixLayout, error) {
	d, err := order.Restrict(spec)
	if err != nil {
		return MatrixLayout{}, err
	}

	var l MatrixLayout
	for i, s := range d.Slots() {
		l.Axis = append(l.Axis, Tick{Index: i, Slot: s, Label: t.LabelOr(s)})
	}

	for _, e := range m.Edges() {
		x, okIn := d.Rank(e.Input)
		y, okOut := d.Rank(e.Output)
		if !okIn || !okOut {
			continue
		}
		l.Cells = append(l.Cells, Cell{X: x, Y: y, Input: e.Input, Output: e.Output})
	}
	return l, nil
}
