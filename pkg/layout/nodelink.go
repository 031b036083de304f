package layout

import (
	"slices"

	"github.com/hxmidi/midimap/pkg/names"
	"github.com/hxmidi/midimap/pkg/order"
	"github.com/hxmidi/midimap/pkg/router"
	"github.com/hxmidi/midimap/pkg/slot"
)

// Column x-coordinates of the node-link view.
const (
	InputX  = 0.0
	OutputX = 1.0
)

// Point is a position in the unit data space of the node-link view.
type Point struct {
	X, Y float64
}

// Node is a plotted slot. Label is empty when the slot has no name; the node
// is still drawn, only its text is suppressed.
type Node struct {
	Slot  slot.Slot
	Point
	Label string
}

// Labeled reports whether the node's text should be drawn.
func (n Node) Labeled() bool { return n.Label != "" }

// Segment is a drawable connection from an input node to an output node.
type Segment struct {
	Input  slot.Slot
	Output slot.Slot
	From   Point
	To     Point
}

// NodeLinkLayout is the node-link projection of a mapping.
type NodeLinkLayout struct {
	Inputs  []Node // one per displayed slot, in slot order, at x = InputX
	Outputs []Node // mirror of Inputs at x = OutputX
	Edges   []Segment

	// Suppressed counts mapping edges hidden because an endpoint is unnamed.
	Suppressed int
}

// RowY returns the vertical coordinate of display rank r among n rows:
// 1 - (r+1)/(n+1). Rows are evenly spaced strictly inside (0, 1).
func RowY(r, n int) float64 {
	return 1.0 - float64(r+1)/float64(n+1)
}

// NodeLink computes the node-link projection.
//
// Every slot of d gets a node on both columns regardless of names. An edge is
// kept only if both of its endpoints have a non-empty name in t.
func NodeLink(m router.Mapping, d order.Display, t names.Table) NodeLinkLayout {
	n := d.Len()
	slots := d.Slots()
	slices.Sort(slots)

	l := NodeLinkLayout{
		Inputs:  make([]Node, 0, n),
		Outputs: make([]Node, 0, n),
	}
	for _, s := range slots {
		r, _ := d.Rank(s)
		y := RowY(r, n)
		label := t[s]
		l.Inputs = append(l.Inputs, Node{Slot: s, Point: Point{InputX, y}, Label: label})
		l.Outputs = append(l.Outputs, Node{Slot: s, Point: Point{OutputX, y}, Label: label})
	}

	for _, e := range m.Edges() {
		ri, okIn := d.Rank(e.Input)
		ro, okOut := d.Rank(e.Output)
		if !okIn || !okOut || !t.Named(e.Input) || !t.Named(e.Output) {
			l.Suppressed++
			continue
		}
		l.Edges = append(l.Edges, Segment{
			Input:  e.Input,
			Output: e.Output,
			From:   Point{InputX, RowY(ri, n)},
			To:     Point{OutputX, RowY(ro, n)},
		})
	}
	return l
}

// Input returns the input node for s.
func (l NodeLinkLayout) Input(s slot.Slot) (Node, bool) {
	return find(l.Inputs, s)
}

// Output returns the output node for s.
func (l NodeLinkLayout) Output(s slot.Slot) (Node, bool) {
	return find(l.Outputs, s)
}

func find(nodes []Node, s slot.Slot) (Node, bool) {
	for _, n := range nodes {
		if n.Slot == s {
			return n, true
		}
	}
	return Node{}, false
}
