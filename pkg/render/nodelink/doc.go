// Package nodelink draws the two-column node-link view of a router mapping.
//
// Inputs sit in a left column at x = 0 and outputs in a right column at
// x = 1, both ordered by the resolved display order (see package layout).
// Each kept connection is a straight line from an input to an output.
//
// # Raster output
//
// [RenderPNG] draws the layout on a 10:12 portrait canvas over the data
// window x ∈ [-0.3, 1.3], y ∈ [0, 1.1]. Inputs are blue circles labeled on
// their left, outputs are red squares labeled on their right, and edges are
// black at 60% opacity. The title, if any, is centered at the bottom.
//
// # Graphviz output
//
// [ToDOT] emits the same layout as DOT with every node pinned via
// pos="x,y!", and [RenderSVG] lays it out with the neato engine, which keeps
// pinned nodes in place:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Title: "MIDI Mappings: Studio"})
//	svg, err := nodelink.RenderSVG(dot)
package nodelink
