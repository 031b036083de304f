package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/hxmidi/midimap/pkg/layout"
	"github.com/hxmidi/midimap/pkg/slot"
)

// Frame size in inches; DOT positions use the same scale as the PNG.
const (
	frameWidthIn  = 10.0
	frameHeightIn = 12.0
)

// ToDOT converts a node-link layout to Graphviz DOT with every node pinned at
// its layout position. Render the result with [RenderSVG].
func ToDOT(l layout.NodeLinkLayout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  forcelabels=true;\n")
	fmt.Fprintf(&buf, "  size=\"%g,%g\";\n", frameWidthIn, frameHeightIn)
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=b;\n  fontsize=16;\n", opts.Title)
	}
	buf.WriteString("  node [label=\"\", fixedsize=true, width=0.14, height=0.14, style=filled, penwidth=0, fontsize=11];\n")
	buf.WriteString("  edge [dir=none, color=\"#00000099\", penwidth=1.2];\n")
	buf.WriteString("\n")

	for _, n := range l.Inputs {
		fmt.Fprintf(&buf, "  %s [shape=circle, fillcolor=%q, pos=%q%s];\n",
			inputID(n.Slot), "#1f77b4", pos(n.Point), xlabel(n))
	}
	for _, n := range l.Outputs {
		fmt.Fprintf(&buf, "  %s [shape=square, fillcolor=%q, pos=%q%s];\n",
			outputID(n.Slot), "#d62728", pos(n.Point), xlabel(n))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %s -> %s;\n", inputID(e.Input), outputID(e.Output))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func inputID(s slot.Slot) string  { return "in" + strconv.Itoa(int(s)) }
func outputID(s slot.Slot) string { return "out" + strconv.Itoa(int(s)) }

// pos maps a data point to pinned inches within the frame.
func pos(p layout.Point) string {
	x := (p.X - xMin) / (xMax - xMin) * frameWidthIn
	y := (p.Y - yMin) / (yMax - yMin) * frameHeightIn
	return fmt.Sprintf("%.4f,%.4f!", x, y)
}

func xlabel(n layout.Node) string {
	if !n.Labeled() {
		return ""
	}
	return fmt.Sprintf(", xlabel=%q", n.Label)
}

// RenderSVG renders DOT produced by [ToDOT] to SVG using the neato engine,
// which honors pinned positions.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales with its
// container instead of carrying Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
