package layout

import (
	"math"
	"testing"

	"github.com/hxmidi/midimap/pkg/errors"
	"github.com/hxmidi/midimap/pkg/names"
	"github.com/hxmidi/midimap/pkg/order"
	"github.com/hxmidi/midimap/pkg/router"
	"github.com/hxmidi/midimap/pkg/slot"
)

func natural() order.Display { return order.Resolve(nil, slot.All()) }

func TestRowY(t *testing.T) {
	tests := []struct {
		r, n int
		want float64
	}{
		{0, 15, 0.9375},
		{14, 15, 0.0625},
		{7, 15, 0.5},
		{0, 1, 0.5},
	}

	for _, tt := range tests {
		if got := RowY(tt.r, tt.n); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("RowY(%d, %d) = %v, want %v", tt.r, tt.n, got, tt.want)
		}
	}
}

func TestNodeLinkAlwaysPlacesAllSlots(t *testing.T) {
	tables := []names.Table{nil, {}, {1: "A"}, {1: "", 2: "B", 15: "Z"}}
	m := router.NewMapping(router.Route{Input: 1, Outputs: []slot.Slot{2, 3}})

	for _, tbl := range tables {
		l := NodeLink(m, natural(), tbl)
		if len(l.Inputs) != slot.Count || len(l.Outputs) != slot.Count {
			t.Errorf("names %v: got %d inputs, %d outputs; want %d each", tbl, len(l.Inputs), len(l.Outputs), slot.Count)
		}
		for i := range l.Inputs {
			in, out := l.Inputs[i], l.Outputs[i]
			if in.X != InputX || out.X != OutputX || in.Y != out.Y || in.Slot != out.Slot {
				t.Errorf("names %v: input %+v and output %+v are not mirrored", tbl, in, out)
			}
			if y := in.Y; y <= 0 || y >= 1 {
				t.Errorf("names %v: slot %d at y=%v, outside (0,1)", tbl, in.Slot, y)
			}
		}
	}
}

func TestNodeLinkEdgeFilter(t *testing.T) {
	m := router.NewMapping(router.Route{Input: 1, Outputs: []slot.Slot{2, 3}})
	tbl := names.Table{1: "A", 2: "B"}

	l := NodeLink(m, natural(), tbl)

	if len(l.Edges) != 1 {
		t.Fatalf("Edges = %+v, want exactly one", l.Edges)
	}
	e := l.Edges[0]
	if e.Input != 1 || e.Output != 2 {
		t.Errorf("edge = %d->%d, want 1->2", e.Input, e.Output)
	}
	if e.From != (Point{InputX, RowY(0, 15)}) || e.To != (Point{OutputX, RowY(1, 15)}) {
		t.Errorf("edge points = %+v -> %+v", e.From, e.To)
	}
	if l.Suppressed != 1 {
		t.Errorf("Suppressed = %d, want 1", l.Suppressed)
	}
}

func TestNodeLinkEmptyNameSuppresses(t *testing.T) {
	m := router.NewMapping(router.Route{Input: 1, Outputs: []slot.Slot{2}})
	l := NodeLink(m, natural(), names.Table{1: "A", 2: ""})
	if len(l.Edges) != 0 {
		t.Errorf("Edges = %+v, want none", l.Edges)
	}

	n, _ := l.Output(2)
	if n.Labeled() {
		t.Errorf("output 2 should be unlabeled: %+v", n)
	}
	n, _ = l.Input(1)
	if !n.Labeled() || n.Label != "A" {
		t.Errorf("input 1 label = %q, want %q", n.Label, "A")
	}
}

func TestNodeLinkUsesDisplayOrder(t *testing.T) {
	d := order.Resolve(order.Spec{5, 2}, slot.All())
	l := NodeLink(router.Mapping{}, d, nil)

	n5, _ := l.Input(5)
	n2, _ := l.Input(2)
	n1, _ := l.Input(1)
	if n5.Y != RowY(0, 15) || n2.Y != RowY(1, 15) || n1.Y != RowY(2, 15) {
		t.Errorf("y positions: 5=%v 2=%v 1=%v", n5.Y, n2.Y, n1.Y)
	}
}

func TestNodeLinkEndToEnd(t *testing.T) {
	entries := []any{"1"}
	for i := 0; i < 14; i++ {
		entries = append(entries, "0")
	}
	m, _ := router.Decode(entries)

	l := NodeLink(m, order.Resolve(nil, slot.All()), nil)
	n, ok := l.Input(1)
	if !ok {
		t.Fatal("no node for input 1")
	}
	if n.Y != 0.9375 {
		t.Errorf("slot 1 y = %v, want 0.9375", n.Y)
	}
	if len(l.Edges) != 0 || l.Suppressed != 1 {
		t.Errorf("unnamed edge 1->1 should be suppressed: edges=%v suppressed=%d", l.Edges, l.Suppressed)
	}
}

func TestMatrix(t *testing.T) {
	m := router.NewMapping(
		router.Route{Input: 1, Outputs: []slot.Slot{2}},
		router.Route{Input: 2, Outputs: []slot.Slot{1}},
	)

	l, err := Matrix(m, order.Spec{2, 1}, nil)
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}
	if len(l.Cells) != 2 {
		t.Fatalf("Cells = %+v, want 2", l.Cells)
	}

	want := map[[2]slot.Slot][2]int{
		{1, 2}: {1, 0},
		{2, 1}: {0, 1},
	}
	for _, c := range l.Cells {
		xy, ok := want[[2]slot.Slot{c.Input, c.Output}]
		if !ok {
			t.Errorf("unexpected cell %+v", c)
			continue
		}
		if c.X != xy[0] || c.Y != xy[1] {
			t.Errorf("cell %d->%d at (%d,%d), want (%d,%d)", c.Input, c.Output, c.X, c.Y, xy[0], xy[1])
		}
	}
}

func TestMatrixNoOrder(t *testing.T) {
	m := router.NewMapping(router.Route{Input: 1, Outputs: []slot.Slot{1}})
	for _, spec := range []order.Spec{nil, {}, {0, 99}} {
		l, err := Matrix(m, spec, nil)
		if !errors.Is(err, errors.ErrCodeNoOrder) {
			t.Errorf("Matrix(%v) error = %v, want %s", spec, err, errors.ErrCodeNoOrder)
		}
		if len(l.Cells) != 0 || l.Size() != 0 {
			t.Errorf("Matrix(%v) produced output: %+v", spec, l)
		}
	}
}

func TestMatrixRestrictsToOrderedSlots(t *testing.T) {
	m := router.NewMapping(
		router.Route{Input: 1, Outputs: []slot.Slot{3, 4}},
		router.Route{Input: 3, Outputs: []slot.Slot{1}},
		router.Route{Input: 7, Outputs: []slot.Slot{1, 3}},
	)

	l, err := Matrix(m, order.Spec{3, 1, 3}, names.Table{1: "Keys", 3: ""})
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}
	if l.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", l.Size())
	}
	if l.Axis[0].Slot != 3 || l.Axis[1].Slot != 1 {
		t.Errorf("axis slots = %d,%d; want 3,1", l.Axis[0].Slot, l.Axis[1].Slot)
	}
	if len(l.Cells) != 2 {
		t.Errorf("Cells = %+v, want 1->3 and 3->1 only", l.Cells)
	}
}

func TestMatrixLabels(t *testing.T) {
	l, err := Matrix(router.Mapping{}, order.Spec{1, 2, 3}, names.Table{1: "Keys", 2: ""})
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}

	want := []string{"Keys", "", "Node 3"}
	for i, tick := range l.Axis {
		if tick.Label != want[i] {
			t.Errorf("Axis[%d].Label = %q, want %q", i, tick.Label, want[i])
		}
		if tick.Index != i {
			t.Errorf("Axis[%d].Index = %d", i, tick.Index)
		}
	}
}
