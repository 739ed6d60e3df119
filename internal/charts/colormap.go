package charts

import (
	"fmt"
	"math"

	"github.com/ajstarks/svgo"
)

// DefaultColormap is the only color scale the heatmap supports, the
// reversed inferno ramp the product has always shipped with.
const DefaultColormap = "inferno_r"

const maxHeatOpacity = 0.85

// inferno anchor colors from dark to light. Heat values walk the scale in
// reverse, so low density is pale yellow and the peak is near black.
var inferno = [][3]uint8{
	{0x00, 0x00, 0x04},
	{0x1b, 0x0c, 0x41},
	{0x4a, 0x0c, 0x6b},
	{0x78, 0x1c, 0x6d},
	{0xa5, 0x2c, 0x60},
	{0xcf, 0x44, 0x46},
	{0xed, 0x69, 0x25},
	{0xfb, 0x9b, 0x06},
	{0xf7, 0xd0, 0x3c},
	{0xfc, 0xff, 0xa4},
}

// heatColor maps a normalized density in [0,1] to a fill color and
// opacity. Opacity ramps linearly from fully transparent at 0 to
// maxHeatOpacity at 1 so the court stays visible under sparse areas.
func heatColor(v float64) (string, float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	t := (1 - v) * float64(len(inferno)-1)
	i := int(t)
	if i >= len(inferno)-1 {
		i = len(inferno) - 2
	}
	frac := t - float64(i)

	c0, c1 := inferno[i], inferno[i+1]
	r := lerpChannel(c0[0], c1[0], frac)
	g := lerpChannel(c0[1], c1[1], frac)
	b := lerpChannel(c0[2], c1[2], frac)

	return fmt.Sprintf("#%02x%02x%02x", r, g, b), maxHeatOpacity * v
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + t*(float64(b)-float64(a))))
}

// heatGradient builds the legend gradient stops, bottom (0) to top (1).
func heatGradient() []svg.Offcolor {
	stops := make([]svg.Offcolor, 0, 11)
	for i := 0; i <= 10; i++ {
		v := float64(i) / 10
		color, opacity := heatColor(v)
		stops = append(stops, svg.Offcolor{Offset: uint8(i * 10), Color: color, Opacity: opacity})
	}
	return stops
}
