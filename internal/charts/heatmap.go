package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jstittsworth/shotcharts/internal/density"
	"github.com/jstittsworth/shotcharts/internal/nba"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// HeatmapOptions are the per-request rendering knobs. Zero resolution,
// bandwidth or colormap fall back to the dashboard defaults; a zero
// threshold is taken literally and masks nothing.
type HeatmapOptions struct {
	PlayerName   string
	Season       string
	Resolution   int
	Bandwidth    float64
	Threshold    float64
	Colormap     string
	SimpleLegend bool
}

const (
	DefaultResolution = 74
	DefaultBandwidth  = 0.4
	DefaultThreshold  = 0.05

	MinResolution = 50
	MaxResolution = 200
	MinBandwidth  = 0.1
	MaxBandwidth  = 1.0
)

const noDataCaption = "No shot data available"

const (
	legendBarWidth  = 30
	legendBarHeight = 700
)

var countPrinter = message.NewPrinter(language.English)

// RenderHeatmap draws a kernel density heatmap of the given shots over
// the court backdrop. Empty input never reaches the estimator and
// renders the court with a no-data caption instead. Identical records
// and options produce byte-identical output.
func RenderHeatmap(records []nba.ShotRecord, opts HeatmapOptions) ([]byte, error) {
	if opts.Resolution == 0 {
		opts.Resolution = DefaultResolution
	}
	if opts.Bandwidth == 0 {
		opts.Bandwidth = DefaultBandwidth
	}
	if opts.Colormap == "" {
		opts.Colormap = DefaultColormap
	}
	if opts.Colormap != DefaultColormap {
		return nil, fmt.Errorf("unsupported colormap %q", opts.Colormap)
	}

	if len(records) == 0 {
		courtOpts := CourtOptions{Caption: noDataCaption}
		if !opts.SimpleLegend {
			courtOpts.Title = heatmapTitle(opts)
		}
		return RenderCourt(courtOpts), nil
	}

	points := make([][2]float64, len(records))
	for i, r := range records {
		points[i] = [2]float64{r.LocX, r.LocY}
	}

	grid, err := density.Estimate(points,
		[2]float64{courtMinX, courtMaxX},
		[2]float64{courtMinY, courtMaxY},
		opts.Resolution, opts.Bandwidth)
	if err != nil {
		return nil, fmt.Errorf("estimating shot density: %w", err)
	}

	var buf bytes.Buffer
	f := newFrame(&buf)
	f.drawCourt(defaultLineColor, defaultLineWidth)
	f.drawHeatCells(grid, opts.Threshold)
	f.drawHeatLegend(grid, len(records), opts)
	if !opts.SimpleLegend {
		f.title(heatmapTitle(opts))
		f.attribution(fmt.Sprintf("Total Shots: %s | Data: stats.nba.com", countPrinter.Sprintf("%d", len(records))))
	}
	f.canvas.End()
	return buf.Bytes(), nil
}

func heatmapTitle(opts HeatmapOptions) string {
	title := "Shot Density"
	if opts.Season != "" {
		title = fmt.Sprintf("Shot Density (%s)", opts.Season)
	}
	if opts.PlayerName != "" {
		title = fmt.Sprintf("%s — %s", opts.PlayerName, title)
	}
	return title
}

// drawHeatCells paints one rect per grid cell at or above the threshold,
// colored and faded by its normalized density. Cells are clipped to the
// court bounds.
func (f frame) drawHeatCells(grid *density.Grid, threshold float64) {
	norm := grid.Normalized()
	dx, dy := grid.Spacing()

	left, top := f.x(courtMinX), f.y(courtMaxY)
	right, bottom := f.x(courtMaxX), f.y(courtMinY)

	for row, vals := range norm {
		cy := grid.YAt(row)
		for col, v := range vals {
			if v < threshold {
				continue
			}
			cx := grid.XAt(col)
			x0 := max(f.x(cx-dx/2), left)
			y0 := max(f.y(cy+dy/2), top)
			x1 := min(f.x(cx+dx/2), right)
			y1 := min(f.y(cy-dy/2), bottom)
			if x1 <= x0 || y1 <= y0 {
				continue
			}
			color, opacity := heatColor(v)
			f.canvas.Rect(x0, y0, x1-x0, y1-y0, fmt.Sprintf("fill:%s;fill-opacity:%.3f", color, opacity))
		}
	}
}

// drawHeatLegend draws the vertical color scale beside the court. The
// frequency variant labels ticks with estimated shots per cell area; the
// simple variant just anchors the ends with Less and More.
func (f frame) drawHeatLegend(grid *density.Grid, totalShots int, opts HeatmapOptions) {
	barX := marginLeft + courtPxW + 40
	barY := marginTop + (courtPxH-legendBarHeight)/2

	f.canvas.Def()
	f.canvas.LinearGradient("heat", 0, 100, 0, 0, heatGradient())
	f.canvas.DefEnd()
	f.canvas.Rect(barX, barY, legendBarWidth, legendBarHeight, "fill:url(#heat)")

	tickStyle := fmt.Sprintf("fill:white;font-size:14px;font-family:%s", fontFamily)
	labelText := "Shot Frequency"
	if opts.SimpleLegend {
		labelText = "Shot Density"
		f.canvas.Text(barX+legendBarWidth+8, barY+legendBarHeight+5, "Less", tickStyle)
		f.canvas.Text(barX+legendBarWidth+8, barY+5, "More", tickStyle)
	} else {
		// Scale tick labels from peak density to estimated shot counts.
		cellArea := courtAreaInches / float64(opts.Resolution*opts.Resolution)
		maxShots := grid.Max() * float64(totalShots) * cellArea
		for i := 0; i <= 5; i++ {
			v := float64(i) / 5
			y := barY + legendBarHeight - int(math.Round(v*legendBarHeight))
			f.canvas.Text(barX+legendBarWidth+8, y+5, fmt.Sprintf("%d", int(v*maxShots)), tickStyle)
		}
	}

	f.canvas.Gtransform(fmt.Sprintf("translate(%d,%d) rotate(-90)", barX+legendBarWidth+75, barY+legendBarHeight/2))
	f.canvas.Text(0, 0, labelText, fmt.Sprintf("fill:white;font-size:16px;text-anchor:middle;font-family:%s", fontFamily))
	f.canvas.Gend()
}
