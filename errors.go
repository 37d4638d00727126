package docwarp

import (
	"github.com/ericlevine/docwarp/geom"
	"github.com/ericlevine/docwarp/transform"
)

var (
	// ErrInvalidInput is returned when the quadrilateral is not exactly four
	// distinct finite points, or an image or size argument is unusable.
	ErrInvalidInput = geom.ErrInvalidInput

	// ErrDegenerateGeometry is returned when the corners are collinear or
	// too close together to span a pixel.
	ErrDegenerateGeometry = geom.ErrDegenerateGeometry

	// ErrSingularTransform is returned when no invertible homography maps
	// the corners onto the output rectangle.
	ErrSingularTransform = transform.ErrSingularTransform
)
