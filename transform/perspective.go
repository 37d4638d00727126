// Package transform provides the projective mapping between a photographed
// quadrilateral and its rectified rectangle, and the resampling that applies it.
package transform

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ericlevine/docwarp/geom"
)

// ErrSingularTransform is returned when four correspondences do not define
// an invertible projective transform, e.g. when three source points are
// collinear.
var ErrSingularTransform = errors.New("transform: singular transform")

// residualTolerance bounds how far, relative to the target extent, a solved
// transform may place a source corner from its target.
const residualTolerance = 1e-7

// PerspectiveTransform is a 3x3 homography acting on homogeneous column
// vectors (x, y, 1). It is normalised so the bottom-right element is 1
// whenever that element is non-zero.
type PerspectiveTransform struct {
	m [3][3]float64
}

// NewPerspectiveTransform builds a transform from its row-major elements.
func NewPerspectiveTransform(m [9]float64) *PerspectiveTransform {
	pt := &PerspectiveTransform{}
	for i, v := range m {
		pt.m[i/3][i%3] = v
	}
	return pt.normalize()
}

// Identity returns the transform that maps every point to itself.
func Identity() *PerspectiveTransform {
	return &PerspectiveTransform{m: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Translation returns the transform that adds (dx, dy) to every point.
func Translation(dx, dy float64) *PerspectiveTransform {
	return &PerspectiveTransform{m: [3][3]float64{{1, 0, dx}, {0, 1, dy}, {0, 0, 1}}}
}

// Matrix returns the row-major elements of the transform.
func (pt *PerspectiveTransform) Matrix() [9]float64 {
	var out [9]float64
	for i := range out {
		out[i] = pt.m[i/3][i%3]
	}
	return out
}

// Solve computes the transform mapping each src corner onto the dst corner
// of the same role.
//
// The eight unknowns h00..h21 (h22 fixed to 1) are found from the linear
// system given by the four correspondences. The source points are first
// shifted so src.TL sits at the origin; the origin then maps to a finite
// point, which keeps h22 away from zero and the system well scaled.
func Solve(src, dst geom.Corners) (*PerspectiveTransform, error) {
	origin := src.TL
	from := src.Points()
	to := dst.Points()

	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := range from {
		sx, sy := from[i].X-origin.X, from[i].Y-origin.Y
		dx, dy := to[i].X, to[i].Y
		r := 2 * i
		// dx = (h00 sx + h01 sy + h02) / (h20 sx + h21 sy + 1)
		a.SetRow(r, []float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx})
		b.SetVec(r, dx)
		// dy = (h10 sx + h11 sy + h12) / (h20 sx + h21 sy + 1)
		a.SetRow(r+1, []float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy})
		b.SetVec(r+1, dy)
	}

	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularTransform, err)
	}
	var elems [9]float64
	for i := 0; i < 8; i++ {
		v := h.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite coefficient h%d", ErrSingularTransform, i)
		}
		elems[i] = v
	}
	elems[8] = 1

	shifted := NewPerspectiveTransform(elems)
	pt := shifted.Times(Translation(-origin.X, -origin.Y)).normalize()

	// A near-singular system can still yield finite coefficients that do
	// not reproduce the correspondences.
	scale := 1.0
	for _, q := range to {
		scale = math.Max(scale, math.Max(math.Abs(q.X), math.Abs(q.Y)))
	}
	for i, p := range from {
		got := pt.TransformPoint(p)
		if !(got.Dist(to[i]) <= residualTolerance*scale) {
			return nil, fmt.Errorf("%w: corner %d maps to %v, want %v", ErrSingularTransform, i, got, to[i])
		}
	}
	return pt, nil
}

// SolveRect computes the transform mapping src onto the pixel-centre corners
// of a rectangle of the given size.
func SolveRect(src geom.Corners, size geom.Size) (*PerspectiveTransform, error) {
	if size.Width < 1 || size.Height < 1 {
		return nil, fmt.Errorf("%w: target size %v", geom.ErrInvalidInput, size)
	}
	return Solve(src, size.Corners())
}

// Inverse returns the transform that undoes pt.
func (pt *PerspectiveTransform) Inverse() (*PerspectiveTransform, error) {
	m := mat.NewDense(3, 3, nil)
	for r := range pt.m {
		m.SetRow(r, pt.m[r][:])
	}
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularTransform, err)
	}
	out := &PerspectiveTransform{}
	for r := range out.m {
		for c := range out.m[r] {
			out.m[r][c] = inv.At(r, c)
		}
	}
	return out.normalize(), nil
}

// Times returns pt * other, the transform that applies other first.
func (pt *PerspectiveTransform) Times(other *PerspectiveTransform) *PerspectiveTransform {
	out := &PerspectiveTransform{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.m[r][c] = pt.m[r][0]*other.m[0][c] + pt.m[r][1]*other.m[1][c] + pt.m[r][2]*other.m[2][c]
		}
	}
	return out
}

// TransformPoint maps p through the transform. Points on the vanishing line
// map to infinity.
func (pt *PerspectiveTransform) TransformPoint(p geom.Point) geom.Point {
	w := pt.m[2][0]*p.X + pt.m[2][1]*p.Y + pt.m[2][2]
	return geom.Point{
		X: (pt.m[0][0]*p.X + pt.m[0][1]*p.Y + pt.m[0][2]) / w,
		Y: (pt.m[1][0]*p.X + pt.m[1][1]*p.Y + pt.m[1][2]) / w,
	}
}

// TransformPoints transforms pairs of (x, y) coordinates in-place.
// points must have even length: [x0, y0, x1, y1, ...].
func (pt *PerspectiveTransform) TransformPoints(points []float64) {
	maxI := len(points) - 1
	for i := 0; i < maxI; i += 2 {
		x := points[i]
		y := points[i+1]
		denominator := pt.m[2][0]*x + pt.m[2][1]*y + pt.m[2][2]
		points[i] = (pt.m[0][0]*x + pt.m[0][1]*y + pt.m[0][2]) / denominator
		points[i+1] = (pt.m[1][0]*x + pt.m[1][1]*y + pt.m[1][2]) / denominator
	}
}

// normalize scales pt so its bottom-right element is 1. A transform whose
// bottom-right element is zero sends the origin to infinity and is left as is.
func (pt *PerspectiveTransform) normalize() *PerspectiveTransform {
	s := pt.m[2][2]
	if s == 0 || s == 1 {
		return pt
	}
	for r := range pt.m {
		for c := range pt.m[r] {
			pt.m[r][c] /= s
		}
	}
	return pt
}

func (pt *PerspectiveTransform) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g; %g %g %g]",
		pt.m[0][0], pt.m[0][1], pt.m[0][2],
		pt.m[1][0], pt.m[1][1], pt.m[1][2],
		pt.m[2][0], pt.m[2][1], pt.m[2][2])
}
