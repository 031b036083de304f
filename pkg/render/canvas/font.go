package canvas

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	DefaultFontSize = 12.0
	fontDPI         = 72
)

var (
	regularFont = sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(goregular.TTF) })
	boldFont    = sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(gobold.TTF) })
)

type faceKey struct {
	size float64
	bold bool
}

// newFace builds a face from the shared parsed font. Faces hold glyph
// buffers and must not be shared between goroutines. A zero size selects
// DefaultFontSize.
func newFace(size float64, bold bool) (font.Face, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	load := regularFont
	if bold {
		load = boldFont
	}
	fnt, err := load()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %.1fpt: %w", size, err)
	}
	return f, nil
}

// face returns the canvas's face for a style, creating it on first use.
func (c *Canvas) face(st TextStyle) (font.Face, error) {
	key := faceKey{st.Size, st.Bold}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	f, err := newFace(st.Size, st.Bold)
	if err != nil {
		return nil, err
	}
	if c.faces == nil {
		c.faces = map[faceKey]font.Face{}
	}
	c.faces[key] = f
	return f, nil
}

// TextWidth measures s without a canvas, for sizing insets before New.
func TextWidth(s string, st TextStyle) (float64, error) {
	face, err := newFace(st.Size, st.Bold)
	if err != nil {
		return 0, err
	}
	defer face.Close()
	return float64(font.MeasureString(face, s) >> 6), nil
}
