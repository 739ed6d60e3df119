package charts

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/ajstarks/svgo"
)

// Court geometry in inches with the origin at the center of the basket.
// These match real NBA half-court dimensions and never vary; only stroke
// color and width are parameters.
const (
	courtMinX = -250.0
	courtMaxX = 250.0
	courtMinY = -47.5
	courtMaxY = 422.5

	threePointRadius = 237.5
	threePointStart  = 22.0 // degrees
	threePointEnd    = 158.0
	cornerThreeX     = 220.0
	cornerThreeTopY  = 92.5
	laneWidth        = 160.0
	laneHeight       = 190.0
	ftLineY          = 142.5
	ftCircleRadius   = 60.0
	restrictedRadius = 40.0
	basketRadius     = 7.5

	courtAreaInches = (courtMaxX - courtMinX) * (courtMaxY - courtMinY)
)

// Pixel layout shared by every chart. Court inches map linearly onto the
// canvas; the basket sits near the bottom with the half-court line at the
// top, x spanning -250..250 left to right.
const (
	pxPerInch    = 2
	marginLeft   = 50
	marginRight  = 170
	marginTop    = 80
	marginBottom = 80

	courtPxW = int((courtMaxX - courtMinX) * pxPerInch)
	courtPxH = int((courtMaxY - courtMinY) * pxPerInch)
	canvasW  = marginLeft + courtPxW + marginRight
	canvasH  = marginTop + courtPxH + marginBottom
)

const (
	defaultLineColor = "white"
	defaultLineWidth = 2.0
	fontFamily       = "Helvetica,Arial,sans-serif"
)

// CourtOptions controls the standalone court rendering.
type CourtOptions struct {
	Title     string
	Caption   string
	LineColor string
	LineWidth float64
}

// frame couples an svg canvas with the court coordinate transform.
type frame struct {
	canvas *svg.SVG
}

func newFrame(w io.Writer) frame {
	canvas := svg.New(w)
	canvas.Start(canvasW, canvasH)
	canvas.Rect(0, 0, canvasW, canvasH, "fill:black")
	return frame{canvas: canvas}
}

// x converts a court x coordinate to canvas pixels.
func (f frame) x(v float64) int {
	return marginLeft + int(math.Round((v-courtMinX)*pxPerInch))
}

// y converts a court y coordinate to canvas pixels. Larger court y is
// farther from the basket, which is higher on the canvas.
func (f frame) y(v float64) int {
	return marginTop + int(math.Round((courtMaxY-v)*pxPerInch))
}

func px(v float64) int {
	return int(math.Round(v * pxPerInch))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// drawCourt draws the half-court markings: boundary, three-point arc and
// corner segments, free throw circle and lane, restricted area, basket
// and free throw line.
func (f frame) drawCourt(color string, width float64) {
	outline := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.1f", color, width)
	line := fmt.Sprintf("stroke:%s;stroke-width:%.1f", color, width)

	// Outer boundary
	f.canvas.Rect(f.x(courtMinX), f.y(courtMaxY), courtPxW, courtPxH, outline)

	// Free throw lane and line
	f.canvas.Rect(f.x(-laneWidth/2), f.y(courtMinY+laneHeight), px(laneWidth), px(laneHeight), outline)
	f.canvas.Line(f.x(-laneWidth/2), f.y(ftLineY), f.x(laneWidth/2), f.y(ftLineY), line)

	// Free throw circle
	f.canvas.Circle(f.x(0), f.y(ftLineY), px(ftCircleRadius), outline)

	// Three-point arc with its straight corner sections
	sx := f.x(threePointRadius * math.Cos(radians(threePointStart)))
	sy := f.y(threePointRadius * math.Sin(radians(threePointStart)))
	ex := f.x(threePointRadius * math.Cos(radians(threePointEnd)))
	ey := f.y(threePointRadius * math.Sin(radians(threePointEnd)))
	f.canvas.Arc(sx, sy, px(threePointRadius), px(threePointRadius), 0, false, false, ex, ey, outline)
	f.canvas.Line(f.x(-cornerThreeX), f.y(courtMinY), f.x(-cornerThreeX), f.y(cornerThreeTopY), line)
	f.canvas.Line(f.x(cornerThreeX), f.y(courtMinY), f.x(cornerThreeX), f.y(cornerThreeTopY), line)

	// Restricted area
	f.canvas.Arc(f.x(restrictedRadius), f.y(0), px(restrictedRadius), px(restrictedRadius), 0, false, false,
		f.x(-restrictedRadius), f.y(0), outline)

	// Basket
	f.canvas.Circle(f.x(0), f.y(0), px(basketRadius), outline)
}

func (f frame) title(s string) {
	f.canvas.Text(marginLeft+courtPxW/2, marginTop-28, s,
		fmt.Sprintf("fill:white;font-size:24px;text-anchor:middle;font-family:%s", fontFamily))
}

func (f frame) caption(s string) {
	f.canvas.Text(f.x(0), f.y(200), s,
		fmt.Sprintf("fill:white;font-size:26px;text-anchor:middle;font-family:%s", fontFamily))
}

func (f frame) attribution(s string) {
	f.canvas.Text(marginLeft, marginTop+courtPxH+40, s,
		fmt.Sprintf("fill:white;font-size:14px;font-family:%s", fontFamily))
}

// RenderCourt draws the court alone, optionally with a title and a
// centered caption. It doubles as the placeholder for charts that have
// no data to show.
func RenderCourt(opts CourtOptions) []byte {
	if opts.LineColor == "" {
		opts.LineColor = defaultLineColor
	}
	if opts.LineWidth == 0 {
		opts.LineWidth = defaultLineWidth
	}

	var buf bytes.Buffer
	f := newFrame(&buf)
	f.drawCourt(opts.LineColor, opts.LineWidth)
	if opts.Caption != "" {
		f.caption(opts.Caption)
	}
	if opts.Title != "" {
		f.title(opts.Title)
	}
	f.canvas.End()
	return buf.Bytes()
}
