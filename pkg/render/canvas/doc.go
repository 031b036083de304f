// Package canvas is the raster drawing surface shared by the PNG renderers.
//
// A [Canvas] maps a data window (for example x ∈ [-0.3, 1.3], y ∈ [0, 1.1])
// onto a fixed-size image with per-side insets, then accepts markers, lines
// and text in data coordinates:
//
//	c, err := canvas.New(canvas.Options{
//	    Width: 1000, Height: 1200,
//	    Window: canvas.Window{XMin: -0.3, XMax: 1.3, YMin: 0, YMax: 1.1},
//	})
//	c.Marker(0, 0.5, canvas.Circle, canvas.Blue, 10)
//	c.Line(0, 0.5, 1, 0.25, canvas.Black.Alpha(0.6), 1.5)
//	c.Text(0, 0.5, "Keystep", canvas.Right, canvas.TextStyle{OffsetX: -8})
//	png, err := c.PNG()
//
// Drawing is done with [github.com/fogleman/gg]; text uses the Go fonts from
// golang.org/x/image/font/gofont through the opentype package.
package canvas
