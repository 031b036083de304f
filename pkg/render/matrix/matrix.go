// Package matrix draws the adjacency-matrix view of a router mapping: one
// black square per connection, inputs along the top and outputs down the
// right side, both in the order's sequence.
package matrix

import (
	"errors"
	"fmt"
	"math"

	"github.com/hxmidi/midimap/pkg/layout"
	"github.com/hxmidi/midimap/pkg/render/canvas"
)

const (
	DefaultWidth  = 400
	DefaultHeight = 400

	tickSize  = 9.0
	axisSize  = 10.0
	titleSize = 11.0
	pad       = 6.0
	maxInset  = 0.45 // of the frame, per side
)

// Options configures matrix rendering.
type Options struct {
	Title  string // bold, top right; the pipeline passes the router name
	Width  int
	Height int
}

var errEmpty = errors.New("matrix has no rows")

// RenderPNG draws the layout. Row and column i both belong to Axis[i]; y is
// inverted so the first ordered slot is the top row.
func RenderPNG(l layout.MatrixLayout, opts Options) ([]byte, error) {
	n := l.Size()
	if n == 0 {
		return nil, errEmpty
	}
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}

	longest := 0.0
	for _, t := range l.Axis {
		tw, err := canvas.TextWidth(t.Label, canvas.TextStyle{Size: tickSize})
		if err != nil {
			return nil, err
		}
		longest = math.Max(longest, tw)
	}
	axisH := axisSize * 1.4
	insets := canvas.Insets{
		Top:    math.Min(pad+axisH+pad+longest+pad, maxInset*float64(h)),
		Right:  math.Min(pad+longest+pad+axisH+pad, maxInset*float64(w)),
		Bottom: 2 * pad,
		Left:   2 * pad,
	}

	lim := float64(n) - 0.5
	c, err := canvas.New(canvas.Options{
		Width:  w,
		Height: h,
		Window: canvas.Window{XMin: -0.5, XMax: lim, YMin: -0.5, YMax: lim, InvertY: true},
		Insets: insets,
	})
	if err != nil {
		return nil, err
	}

	for i := range n {
		v := float64(i)
		c.GridLine(true, v, canvas.Grey, 0.8)
		c.GridLine(false, v, canvas.Grey, 0.8)
	}

	px0, _ := c.Px(0, 0)
	px1, _ := c.Px(1, 0)
	marker := math.Min((px1-px0)*0.6, 10)
	for _, cell := range l.Cells {
		c.Marker(float64(cell.X), float64(cell.Y), canvas.Square, canvas.Black, marker)
	}

	tick := canvas.TextStyle{Size: tickSize}
	for _, t := range l.Axis {
		v := float64(t.Index)
		top := tick
		top.OffsetY, top.Rotate = -pad, 90
		if err := c.Text(v, -0.5, t.Label, canvas.Left, top); err != nil {
			return nil, fmt.Errorf("tick %d: %w", t.Slot, err)
		}
		right := tick
		right.OffsetX = pad
		if err := c.Text(lim, v, t.Label, canvas.Left, right); err != nil {
			return nil, fmt.Errorf("tick %d: %w", t.Slot, err)
		}
	}

	cx, _ := c.Px(float64(n-1)/2, 0)
	_, cy := c.Px(0, float64(n-1)/2)
	axis := canvas.TextStyle{Size: axisSize}
	if err := c.TextPx(cx, pad, "Inputs", canvas.TopCenter, axis); err != nil {
		return nil, err
	}
	axis.Rotate = 90
	if err := c.TextPx(float64(w)-pad-axisH/2, cy, "Outputs", canvas.Center, axis); err != nil {
		return nil, err
	}

	if opts.Title != "" {
		st := canvas.TextStyle{Size: titleSize, Bold: true}
		if err := c.TextPx(float64(w)-pad, pad, opts.Title, canvas.TopRight, st); err != nil {
			return nil, err
		}
	}
	return c.PNG()
}
