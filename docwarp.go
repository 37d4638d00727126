// Package docwarp rectifies a photographed document into an upright,
// axis-aligned image.
//
// Given the four corners of the document's boundary in arbitrary order,
// Rectify classifies them into roles, sizes the output rectangle from the
// longest observed edges, solves the homography from the photograph onto
// that rectangle and resamples the photograph through its inverse.
package docwarp

import (
	"image"
	"image/color"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ericlevine/docwarp/geom"
	"github.com/ericlevine/docwarp/transform"
)

// Options configures Rectify. A nil *Options is equivalent to the zero value.
type Options struct {
	// Size fixes the output size instead of estimating it from the corners.
	Size *geom.Size

	// Workers is the number of goroutines used for resampling. Zero or less
	// means runtime.GOMAXPROCS(0).
	Workers int

	// Background fills output pixels that map outside the source image.
	// Nil means opaque black.
	Background color.Color

	// Epsilon is the tolerance, in source pixels, for samples falling just
	// outside the source image. Zero means transform.DefaultEpsilon.
	Epsilon float64

	// Logger receives debug output for each stage. Nil discards it.
	Logger logrus.FieldLogger
}

// Result is a rectified document together with the geometry that produced it.
type Result struct {
	Image   image.Image
	Corners geom.Corners
	Size    geom.Size

	// Forward maps source image coordinates to output coordinates and
	// Inverse maps them back.
	Forward *transform.PerspectiveTransform
	Inverse *transform.PerspectiveTransform
}

// Rectify warps the region of img bounded by quad into an upright rectangle.
// Failures are returned as errors wrapping ErrInvalidInput,
// ErrDegenerateGeometry or ErrSingularTransform; no partial result is ever
// returned.
func Rectify(img image.Image, quad geom.Quadrilateral, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	log := opts.logger()

	corners, err := geom.Classify(quad)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"tl": corners.TL, "tr": corners.TR, "br": corners.BR, "bl": corners.BL,
	}).Debug("Classified corners")

	var size geom.Size
	if opts.Size != nil {
		size = *opts.Size
	} else if size, err = geom.EstimateSize(corners); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"width":     size.Width,
		"height":    size.Height,
		"estimated": opts.Size == nil,
	}).Debug("Output size")

	forward, err := transform.SolveRect(corners, size)
	if err != nil {
		return nil, err
	}
	inverse, err := forward.Inverse()
	if err != nil {
		return nil, err
	}
	log.WithField("homography", forward).Debug("Solved perspective transform")

	out, err := transform.Warp(img, inverse, size, &transform.WarpOptions{
		Workers:    opts.Workers,
		Background: opts.Background,
		Epsilon:    opts.Epsilon,
	})
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"source": img.Bounds().Size(),
		"output": out.Bounds().Size(),
	}).Debug("Warped image")

	return &Result{
		Image:   out,
		Corners: corners,
		Size:    size,
		Forward: forward,
		Inverse: inverse,
	}, nil
}

func (o *Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
