package pipeline

import (
	stderrors "errors"
	"fmt"

	"github.com/hxmidi/midimap/pkg/errors"
	"github.com/hxmidi/midimap/pkg/layout"
	"github.com/hxmidi/midimap/pkg/render/matrix"
	"github.com/hxmidi/midimap/pkg/render/nodelink"
)

// errSkipFormat marks a kind/format pair that has no renderer.
var errSkipFormat = stderrors.New("format not available for this kind")

// hasRenderer reports whether kind can be produced in format.
func hasRenderer(kind, format string) bool {
	return !(kind == KindMatrix && format == FormatSVG)
}

// renderDiagram renders the node-link view in one format.
func renderDiagram(l layout.NodeLinkLayout, format string, title string, size Size) ([]byte, error) {
	opts := nodelink.Options{Title: title, Width: size.Width, Height: size.Height}
	switch format {
	case FormatPNG:
		return nodelink.RenderPNG(l, opts)
	case FormatSVG:
		return nodelink.RenderSVG(nodelink.ToDOT(l, opts))
	default:
		return nil, fmt.Errorf("unsupported diagram format: %s", format)
	}
}

// renderMatrix renders the matrix view in one format.
func renderMatrix(l layout.MatrixLayout, format string, title string, size Size) ([]byte, error) {
	switch format {
	case FormatPNG:
		return matrix.RenderPNG(l, matrix.Options{Title: title, Width: size.Width, Height: size.Height})
	case FormatSVG:
		return nil, errSkipFormat
	default:
		return nil, fmt.Errorf("unsupported matrix format: %s", format)
	}
}

// renderFailed wraps a renderer error for an artifact.
func renderFailed(a *Artifact, err error) error {
	return errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", a.Name())
}
