package geom

import "errors"

var (
	// ErrInvalidInput is returned when a quadrilateral does not consist of
	// exactly four distinct, finite points.
	ErrInvalidInput = errors.New("geom: invalid input")

	// ErrDegenerateGeometry is returned when the corners are collinear or
	// span no area, so there is nothing to rectify.
	ErrDegenerateGeometry = errors.New("geom: degenerate geometry")
)
