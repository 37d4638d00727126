package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// collinearTolerance bounds twice the area of a triangle, relative to the
// squared longest side, below which its vertices count as collinear.
const collinearTolerance = 1e-9

// EstimateSize returns the output size that keeps the longer of each pair of
// opposing sides at full resolution. Corners are pixel centres, so a side
// of length n spans n+1 pixels.
func EstimateSize(c Corners) (Size, error) {
	top := c.TR.Dist(c.TL)
	bottom := c.BR.Dist(c.BL)
	left := c.BL.Dist(c.TL)
	right := c.BR.Dist(c.TR)

	if Collinear(c.Points()) {
		return Size{}, fmt.Errorf("%w: corners %v are collinear", ErrDegenerateGeometry, c.Points())
	}

	w := math.Round(floats.Max([]float64{top, bottom}))
	h := math.Round(floats.Max([]float64{left, right}))
	if w < 1 || h < 1 {
		return Size{}, fmt.Errorf("%w: sides round to %gx%g", ErrDegenerateGeometry, w, h)
	}
	return Size{Width: int(w) + 1, Height: int(h) + 1}, nil
}

// Collinear reports whether all four points lie on one line, i.e. every
// triangle drawn from three of them is flat.
func Collinear(pts [4]Point) bool {
	var sides []float64
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			sides = append(sides, pts[i].Dist(pts[j]))
		}
	}
	scale := floats.Max(sides)
	if scale == 0 {
		return true
	}
	areas := make([]float64, 0, len(pts))
	for skip := range pts {
		var tri []Point
		for i, p := range pts {
			if i != skip {
				tri = append(tri, p)
			}
		}
		areas = append(areas, math.Abs(cross(tri[1].Sub(tri[0]), tri[2].Sub(tri[0]))))
	}
	return floats.Max(areas) <= collinearTolerance*scale*scale
}

func cross(a, b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}
