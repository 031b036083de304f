package nodelink

import (
	"fmt"

	"github.com/hxmidi/midimap/pkg/layout"
	"github.com/hxmidi/midimap/pkg/render/canvas"
)

// Data window of the diagram. The margins leave room for labels beside both
// columns and for the title below the lowest row.
const (
	xMin, xMax = -0.3, 1.3
	yMin, yMax = 0.0, 1.1
)

const (
	DefaultWidth  = 1000
	DefaultHeight = 1200

	markerSize  = 14.0
	labelOffset = 0.05
	edgeAlpha   = 0.6
)

// Options configures diagram rendering.
type Options struct {
	Title  string // drawn at the bottom; the pipeline passes "MIDI Mappings: <name>"
	Width  int    // pixels; default DefaultWidth
	Height int    // pixels; default DefaultHeight
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// RenderPNG draws the layout: input circles on the left, output squares on the
// right, a straight edge per kept connection and a label beside every named
// node.
func RenderPNG(l layout.NodeLinkLayout, opts Options) ([]byte, error) {
	w, h := opts.size()
	c, err := canvas.New(canvas.Options{
		Width:  w,
		Height: h,
		Window: canvas.Window{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax},
	})
	if err != nil {
		return nil, err
	}

	edge := canvas.Black.Alpha(edgeAlpha)
	for _, e := range l.Edges {
		c.Line(e.From.X, e.From.Y, e.To.X, e.To.Y, edge, 1.5)
	}

	for _, n := range l.Inputs {
		c.Marker(n.X, n.Y, canvas.Circle, canvas.Blue, markerSize)
		if n.Labeled() {
			if err := c.Text(n.X-labelOffset, n.Y, n.Label, canvas.Right, canvas.TextStyle{}); err != nil {
				return nil, fmt.Errorf("input %d label: %w", n.Slot, err)
			}
		}
	}
	for _, n := range l.Outputs {
		c.Marker(n.X, n.Y, canvas.Square, canvas.Red, markerSize)
		if n.Labeled() {
			if err := c.Text(n.X+labelOffset, n.Y, n.Label, canvas.Left, canvas.TextStyle{}); err != nil {
				return nil, fmt.Errorf("output %d label: %w", n.Slot, err)
			}
		}
	}

	if opts.Title != "" {
		px, _ := c.Px(0.5, yMin)
		if err := c.TextPx(px, float64(h)-16, opts.Title, canvas.BottomCenter, canvas.TextStyle{Size: 16}); err != nil {
			return nil, fmt.Errorf("title: %w", err)
		}
	}
	return c.PNG()
}
