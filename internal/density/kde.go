package density

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrTooFewPoints       = errors.New("kernel density needs at least 3 points")
	ErrSingularCovariance = errors.New("point covariance is singular")
)

// Grid holds kernel density values sampled on a regular grid. Values is
// indexed [row][col] with row following y and col following x; both axes
// include their range endpoints.
type Grid struct {
	XMin, XMax float64
	YMin, YMax float64
	Resolution int
	Values     [][]float64

	xStep float64
	yStep float64
	max   float64
}

// Estimate fits a Gaussian kernel density estimate over the given 2-D
// points and evaluates it on a resolution x resolution grid spanning
// xRange and yRange. The kernel covariance is the sample covariance of
// the points scaled by bandwidthFactor squared, so smaller factors give
// tighter hot spots and larger factors smooth more broadly. The result
// is deterministic for identical inputs.
//
// Callers are expected to handle the no-data case before calling; fewer
// than 3 points or points without 2-D spread return an error.
func Estimate(points [][2]float64, xRange, yRange [2]float64, resolution int, bandwidthFactor float64) (*Grid, error) {
	n := len(points)
	if n < 3 {
		return nil, ErrTooFewPoints
	}
	if resolution < 2 {
		return nil, fmt.Errorf("grid resolution must be at least 2, got %d", resolution)
	}
	if bandwidthFactor <= 0 {
		return nil, fmt.Errorf("bandwidth factor must be positive, got %g", bandwidthFactor)
	}
	if xRange[1] <= xRange[0] || yRange[1] <= yRange[0] {
		return nil, fmt.Errorf("grid range is empty: x %v, y %v", xRange, yRange)
	}

	data := mat.NewDense(n, 2, nil)
	for i, p := range points {
		data.Set(i, 0, p[0])
		data.Set(i, 1, p[1])
	}

	cov := mat.NewSymDense(2, nil)
	stat.CovarianceMatrix(cov, data, nil)

	f2 := bandwidthFactor * bandwidthFactor
	kernel := mat.NewSymDense(2, []float64{
		cov.At(0, 0) * f2, cov.At(0, 1) * f2,
		cov.At(0, 1) * f2, cov.At(1, 1) * f2,
	})

	det := mat.Det(kernel)
	if det <= 0 || math.IsNaN(det) {
		return nil, ErrSingularCovariance
	}
	var inv mat.Dense
	if err := inv.Inverse(kernel); err != nil {
		return nil, ErrSingularCovariance
	}
	ia, ib, id := inv.At(0, 0), inv.At(0, 1), inv.At(1, 1)

	// Gaussian normalization for two dimensions: n * 2pi * sqrt(det).
	norm := float64(n) * 2 * math.Pi * math.Sqrt(det)

	g := &Grid{
		XMin:       xRange[0],
		XMax:       xRange[1],
		YMin:       yRange[0],
		YMax:       yRange[1],
		Resolution: resolution,
		Values:     make([][]float64, resolution),
		xStep:      (xRange[1] - xRange[0]) / float64(resolution-1),
		yStep:      (yRange[1] - yRange[0]) / float64(resolution-1),
	}

	for row := 0; row < resolution; row++ {
		g.Values[row] = make([]float64, resolution)
		y := g.YAt(row)
		for col := 0; col < resolution; col++ {
			x := g.XAt(col)
			var sum float64
			for _, p := range points {
				dx := x - p[0]
				dy := y - p[1]
				sum += math.Exp(-0.5 * (ia*dx*dx + 2*ib*dx*dy + id*dy*dy))
			}
			v := sum / norm
			g.Values[row][col] = v
			if v > g.max {
				g.max = v
			}
		}
	}

	return g, nil
}

// XAt returns the x coordinate of a grid column.
func (g *Grid) XAt(col int) float64 {
	return g.XMin + float64(col)*g.xStep
}

// YAt returns the y coordinate of a grid row.
func (g *Grid) YAt(row int) float64 {
	return g.YMin + float64(row)*g.yStep
}

// Spacing returns the distance between adjacent grid samples on each axis.
func (g *Grid) Spacing() (float64, float64) {
	return g.xStep, g.yStep
}

// Max returns the largest density value on the grid.
func (g *Grid) Max() float64 {
	return g.max
}

// Normalized returns the grid values divided by the grid maximum, so the
// peak cell is exactly 1.0 and everything else falls in [0, 1]. A zero
// maximum yields all zeros.
func (g *Grid) Normalized() [][]float64 {
	out := make([][]float64, len(g.Values))
	for row, vals := range g.Values {
		out[row] = make([]float64, len(vals))
		if g.max == 0 {
			continue
		}
		for col, v := range vals {
			out[row][col] = v / g.max
		}
	}
	return out
}
