// Package geom holds the plane geometry of a detected document boundary:
// classifying its corners into roles and sizing the rectangle it rectifies to.
package geom

import (
	"fmt"
	"math"
)

// Point is a real-valued location in image pixel space. The origin is at the
// top-left, x grows to the right and y grows downwards.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Quadrilateral is the arbitrarily ordered vertex list of a detected
// boundary. A valid one has exactly four distinct points.
type Quadrilateral []Point

// Corners is a quadrilateral whose points have been assigned roles.
type Corners struct {
	TL, TR, BR, BL Point
}

// Points returns the corners in TL, TR, BR, BL order.
func (c Corners) Points() [4]Point {
	return [4]Point{c.TL, c.TR, c.BR, c.BL}
}

// Size is the pixel size of a rectified output image.
type Size struct {
	Width, Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Corners returns the pixel-centre corners of a Width x Height grid in
// TL, TR, BR, BL order.
func (s Size) Corners() Corners {
	w := float64(s.Width - 1)
	h := float64(s.Height - 1)
	return Corners{TL: Pt(0, 0), TR: Pt(w, 0), BR: Pt(w, h), BL: Pt(0, h)}
}
