package canvas

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Window is the data-space rectangle shown by a canvas. With InvertY, YMin
// is at the top of the plot area instead of the bottom.
type Window struct {
	XMin, XMax float64
	YMin, YMax float64
	InvertY    bool
}

// Insets reserve pixels around the plot area for labels and titles.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Options configures a new Canvas.
type Options struct {
	Width, Height int
	Window        Window
	Insets        Insets
	Background    color.Color // default white
}

// Shape is a marker shape.
type Shape int

const (
	Circle Shape = iota
	Square
)

// Anchor positions text relative to its point: X is 0 (left) to 1 (right),
// Y is 0 (baseline) to 1 (top).
type Anchor struct{ X, Y float64 }

var (
	Left         = Anchor{0, 0.5}
	Right        = Anchor{1, 0.5}
	Center       = Anchor{0.5, 0.5}
	BottomCenter = Anchor{0.5, 0}
	TopCenter    = Anchor{0.5, 1}
	TopRight     = Anchor{1, 1}
)

// TextStyle adjusts a single Text call. Offsets are in pixels and applied
// after the data→pixel transform; Rotate is in degrees, counter-clockwise.
type TextStyle struct {
	Size    float64 // points; default 12
	Bold    bool
	Color   color.Color
	OffsetX float64
	OffsetY float64
	Rotate  float64
}

// Canvas is a raster image with a data coordinate system.
//
// A Canvas is not safe for concurrent use; separate canvases may be drawn
// from separate goroutines.
type Canvas struct {
	dc    *gg.Context
	opts  Options
	faces map[faceKey]font.Face
}

// New creates a blank canvas.
func New(opts Options) (*Canvas, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d must be positive", opts.Width, opts.Height)
	}
	w := opts.Window
	if w.XMax <= w.XMin || w.YMax <= w.YMin {
		return nil, fmt.Errorf("empty data window %+v", w)
	}
	if float64(opts.Width)-opts.Insets.Left-opts.Insets.Right <= 0 ||
		float64(opts.Height)-opts.Insets.Top-opts.Insets.Bottom <= 0 {
		return nil, fmt.Errorf("insets %+v leave no plot area in %dx%d", opts.Insets, opts.Width, opts.Height)
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc, opts: opts}, nil
}

// Px converts a data coordinate to pixel space.
func (c *Canvas) Px(x, y float64) (float64, float64) {
	w, in := c.opts.Window, c.opts.Insets
	pw := float64(c.opts.Width) - in.Left - in.Right
	ph := float64(c.opts.Height) - in.Top - in.Bottom

	px := in.Left + (x-w.XMin)/(w.XMax-w.XMin)*pw
	var py float64
	if w.InvertY {
		py = in.Top + (y-w.YMin)/(w.YMax-w.YMin)*ph
	} else {
		py = in.Top + (w.YMax-y)/(w.YMax-w.YMin)*ph
	}
	return px, py
}

// Marker draws a filled marker of the given pixel size centered on (x, y).
func (c *Canvas) Marker(x, y float64, shape Shape, col color.Color, size float64) {
	px, py := c.Px(x, y)
	c.dc.SetColor(col)
	switch shape {
	case Square:
		c.dc.DrawRectangle(px-size/2, py-size/2, size, size)
	default:
		c.dc.DrawCircle(px, py, size/2)
	}
	c.dc.Fill()
}

// Line draws a straight stroke between two data points.
func (c *Canvas) Line(x1, y1, x2, y2 float64, col color.Color, width float64) {
	px1, py1 := c.Px(x1, y1)
	px2, py2 := c.Px(x2, y2)
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(px1, py1, px2, py2)
	c.dc.Stroke()
}

// Text draws s at data point (x, y).
func (c *Canvas) Text(x, y float64, s string, a Anchor, st TextStyle) error {
	px, py := c.Px(x, y)
	return c.TextPx(px+st.OffsetX, py+st.OffsetY, s, a, TextStyle{
		Size: st.Size, Bold: st.Bold, Color: st.Color, Rotate: st.Rotate,
	})
}

// TextPx draws s at a pixel position, ignoring the data window.
func (c *Canvas) TextPx(px, py float64, s string, a Anchor, st TextStyle) error {
	if s == "" {
		return nil
	}
	face, err := c.face(st)
	if err != nil {
		return err
	}
	col := st.Color
	if col == nil {
		col = Black
	}

	c.dc.Push()
	defer c.dc.Pop()
	c.dc.SetFontFace(face)
	c.dc.SetColor(col)
	if st.Rotate != 0 {
		c.dc.RotateAbout(gg.Radians(-st.Rotate), px, py)
	}
	c.dc.DrawStringAnchored(s, px, py, a.X, a.Y)
	return nil
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// PNG returns the canvas encoded as PNG bytes.
func (c *Canvas) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GridLine draws a dashed line across the whole window, vertical at x = v or
// horizontal at y = v.
func (c *Canvas) GridLine(vertical bool, v float64, col color.Color, width float64) {
	w := c.opts.Window
	c.dc.Push()
	defer c.dc.Pop()
	c.dc.SetDash(4, 3)
	if vertical {
		c.Line(v, w.YMin, v, w.YMax, col, width)
	} else {
		c.Line(w.XMin, v, w.XMax, v, col, width)
	}
}
