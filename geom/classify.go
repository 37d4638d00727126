package geom

import "fmt"

// Classify assigns the TL, TR, BR and BL roles to the points of quad.
//
// The point with the smallest x+y is TL and the point with the largest is
// BR. Of the remaining two, the one further left is BL and the other TR.
// Ties on x+y are broken by x-y, and a tie on x between the last two by
// preferring the lower point as BL, so the result only depends on the set of
// points and never on the order they were supplied in.
func Classify(quad Quadrilateral) (Corners, error) {
	if len(quad) != 4 {
		return Corners{}, fmt.Errorf("%w: need 4 points, got %d", ErrInvalidInput, len(quad))
	}
	for i, p := range quad {
		if !p.finite() {
			return Corners{}, fmt.Errorf("%w: point %d is not finite", ErrInvalidInput, i)
		}
		for j := i + 1; j < len(quad); j++ {
			if p == quad[j] {
				return Corners{}, fmt.Errorf("%w: points %d and %d coincide at %v", ErrInvalidInput, i, j, p)
			}
		}
	}

	tl, br := 0, 0
	for i := 1; i < len(quad); i++ {
		if diagonalLess(quad[i], quad[tl]) {
			tl = i
		}
		if diagonalLess(quad[br], quad[i]) {
			br = i
		}
	}

	var rest []int
	for i := range quad {
		if i != tl && i != br {
			rest = append(rest, i)
		}
	}
	bl, tr := quad[rest[0]], quad[rest[1]]
	if leftOf(tr, bl) {
		bl, tr = tr, bl
	}

	return Corners{TL: quad[tl], TR: tr, BR: quad[br], BL: bl}, nil
}

// diagonalLess orders points along the main diagonal, then across it. The
// trailing comparisons only matter once the sums have lost precision.
func diagonalLess(a, b Point) bool {
	if sa, sb := a.X+a.Y, b.X+b.Y; sa != sb {
		return sa < sb
	}
	if da, db := a.X-a.Y, b.X-b.Y; da != db {
		return da < db
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// leftOf reports whether a is the better bottom-left candidate than b.
func leftOf(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y > b.Y
}
