package router

import (
	"slices"
	"testing"

	"github.com/hxmidi/midimap/pkg/slot"
)

func TestNewMapping(t *testing.T) {
	m := NewMapping(
		Route{Input: 3, Outputs: []slot.Slot{5, 1, 5}},
		Route{Input: 1, Outputs: []slot.Slot{2}},
	)

	if got := m.Inputs(); !slices.Equal(got, []slot.Slot{1, 3}) {
		t.Errorf("Inputs() = %v, want [1 3]", got)
	}
	if got, _ := m.Outputs(3); !slices.Equal(got, []slot.Slot{1, 5}) {
		t.Errorf("Outputs(3) = %v, want [1 5]", got)
	}
	if _, ok := m.Outputs(2); ok {
		t.Error("Outputs(2) reported present")
	}
	if m.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", m.EdgeCount())
	}
}

func TestRoutesAreCopies(t *testing.T) {
	m := NewMapping(Route{Input: 1, Outputs: []slot.Slot{1, 2}})
	routes := m.Routes()
	routes[0].Outputs[0] = 9

	if got, _ := m.Outputs(1); got[0] != 1 {
		t.Errorf("mutating Routes() changed the mapping: %v", got)
	}
}

func TestLines(t *testing.T) {
	m, _ := Decode([]any{"5", "0", "4000"})
	want := []string{
		"Input  1 -> Output 1, Output 3",
		"Input  2 -> None",
		"Input  3 -> Output 15",
	}

	got := m.Lines()
	if !slices.Equal(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}

func TestAdjacency(t *testing.T) {
	m := NewMapping(
		Route{Input: 1, Outputs: []slot.Slot{2, 3}},
		Route{Input: 15, Outputs: []slot.Slot{15}},
	)
	a := m.Adjacency(slot.Count)

	r, c := a.Dims()
	if r != slot.Count || c != slot.Count {
		t.Fatalf("Dims() = %d×%d, want 15×15", r, c)
	}

	tests := []struct {
		in, out int
		want    float64
	}{
		{1, 2, 1},
		{1, 3, 1},
		{2, 1, 0},
		{15, 15, 1},
		{1, 1, 0},
	}
	for _, tt := range tests {
		if got := a.At(tt.in-1, tt.out-1); got != tt.want {
			t.Errorf("At(%d,%d) = %v, want %v", tt.in, tt.out, got, tt.want)
		}
	}
}
