package canvas

import "image/color"

// RGB is an opaque color that can be faded with Alpha.
type RGB color.NRGBA

func (c RGB) RGBA() (r, g, b, a uint32) { return color.NRGBA(c).RGBA() }

// Alpha returns c with opacity a in [0, 1].
func (c RGB) Alpha(a float64) color.Color {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	n := color.NRGBA(c)
	n.A = uint8(a*255 + 0.5)
	return n
}

var (
	Black = RGB{0, 0, 0, 255}
	White = RGB{255, 255, 255, 255}
	Blue  = RGB{31, 119, 180, 255}
	Red   = RGB{214, 39, 40, 255}
	Grey  = RGB{176, 176, 176, 255}
)
