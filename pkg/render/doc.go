// Package render groups the image renderers for router mappings.
//
// # Overview
//
// Renderers consume layouts from [layout] and return encoded image bytes.
// None of them read files or compute positions themselves.
//
//   - [canvas]: a raster surface with a data coordinate system, markers,
//     text and dashed grid lines, built on gg with the Go fonts
//   - [nodelink]: the two-column diagram, as PNG through canvas or as SVG
//     through Graphviz with pinned node positions
//   - [matrix]: the adjacency-matrix view, PNG only
//
// # Example
//
//	l := layout.NodeLink(mapping, display, names)
//	png, err := nodelink.RenderPNG(l, nodelink.Options{Title: "MIDI Mappings: studio"})
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Title: "MIDI Mappings: studio"})
//	svg, err := nodelink.RenderSVG(dot)
//
// [layout]: github.com/hxmidi/midimap/pkg/layout
// [canvas]: github.com/hxmidi/midimap/pkg/render/canvas
// [nodelink]: github.com/hxmidi/midimap/pkg/render/nodelink
// [matrix]: github.com/hxmidi/midimap/pkg/render/matrix
package render
