package charts

import (
	"bytes"
	"fmt"

	"github.com/jstittsworth/shotcharts/internal/nba"
)

// Make and miss colors, shared with the legend swatches.
const (
	missColor = "#FF4444"
	makeColor = "#00BFFF"

	DefaultDotRadius  = 5
	DefaultDotOpacity = 0.7
)

// DotOptions controls marker size and transparency. Zero values fall
// back to the defaults.
type DotOptions struct {
	DotRadius int
	Opacity   float64
}

// RenderShotDots plots every shot as a dot over the court, misses in red
// and makes in blue, with a two-entry legend underneath. Empty input
// renders the bare court with no markers and no legend.
func RenderShotDots(records []nba.ShotRecord, opts DotOptions) []byte {
	if opts.DotRadius == 0 {
		opts.DotRadius = DefaultDotRadius
	}
	if opts.Opacity == 0 {
		opts.Opacity = DefaultDotOpacity
	}

	var buf bytes.Buffer
	f := newFrame(&buf)
	f.drawCourt(defaultLineColor, defaultLineWidth)

	if len(records) == 0 {
		f.canvas.End()
		return buf.Bytes()
	}

	missStyle := dotStyle(missColor, opts.Opacity)
	makeStyle := dotStyle(makeColor, opts.Opacity)

	var made, missed int
	for _, r := range records {
		if r.Made {
			made++
			continue
		}
		missed++
		f.canvas.Circle(f.x(r.LocX), f.y(r.LocY), opts.DotRadius, missStyle)
	}
	for _, r := range records {
		if r.Made {
			f.canvas.Circle(f.x(r.LocX), f.y(r.LocY), opts.DotRadius, makeStyle)
		}
	}

	f.drawDotLegend(made, missed)
	f.canvas.End()
	return buf.Bytes()
}

func dotStyle(color string, opacity float64) string {
	return fmt.Sprintf("fill:%s;fill-opacity:%.2f;stroke:white;stroke-width:0.3", color, opacity)
}

// drawDotLegend draws the centered made/missed legend below the court.
func (f frame) drawDotLegend(made, missed int) {
	center := marginLeft + courtPxW/2
	boxW, boxH := 380, 44
	boxX := center - boxW/2
	boxY := marginTop + courtPxH + 18

	f.canvas.Rect(boxX, boxY, boxW, boxH, "fill:black;stroke:white;stroke-width:1")

	textStyle := fmt.Sprintf("fill:white;font-size:16px;font-family:%s", fontFamily)
	swatchY := boxY + boxH/2
	textY := swatchY + 6

	f.canvas.Circle(center-140, swatchY, 7, "fill:"+missColor)
	f.canvas.Text(center-124, textY, fmt.Sprintf("Missed (%d)", missed), textStyle)
	f.canvas.Circle(center+30, swatchY, 7, "fill:"+makeColor)
	f.canvas.Text(center+46, textY, fmt.Sprintf("Made (%d)", made), textStyle)
}
