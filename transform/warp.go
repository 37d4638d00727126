package transform

import (
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"

	"github.com/ericlevine/docwarp/geom"
)

// DefaultEpsilon is how far, in source pixels, a sample may fall outside the
// source image and still be clamped onto its edge.
const DefaultEpsilon = 1e-3

// WarpOptions configures Warp. The zero value is ready to use.
type WarpOptions struct {
	// Workers is the number of goroutines that fill output rows. Zero or
	// less means runtime.GOMAXPROCS(0).
	Workers int

	// Background fills output pixels whose source falls outside the image.
	// Nil means opaque black.
	Background color.Color

	// Epsilon overrides DefaultEpsilon when positive.
	Epsilon float64
}

// Warp builds a size.Width x size.Height image whose pixel (tx, ty) is the
// bilinear sample of src at inv(tx, ty). Source coordinates are relative to
// src.Bounds().Min.
//
// The result has the pixel format of src for *image.Gray, *image.RGBA and
// *image.NRGBA, and is an *image.RGBA otherwise.
func Warp(src image.Image, inv *PerspectiveTransform, size geom.Size, opts *WarpOptions) (image.Image, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty source image", geom.ErrInvalidInput)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: nil transform", geom.ErrInvalidInput)
	}
	if size.Width < 1 || size.Height < 1 {
		return nil, fmt.Errorf("%w: target size %v", geom.ErrInvalidInput, size)
	}
	if opts == nil {
		opts = &WarpOptions{}
	}

	in := newRaster(src)
	dst, out := in.blank(size.Width, size.Height)

	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}
	eps := opts.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > size.Height {
		workers = size.Height
	}

	w := &warper{in: in, out: out, inv: inv, background: in.encode(bg), eps: eps}
	rowsPerWorker := (size.Height + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < size.Height; start += rowsPerWorker {
		end := min(start+rowsPerWorker, size.Height)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			w.rows(start, end)
		}(start, end)
	}
	wg.Wait()
	return dst, nil
}

// warper holds the read-only state shared by the goroutines of one Warp
// call. Each goroutine writes a disjoint band of output rows.
type warper struct {
	in, out    *raster
	inv        *PerspectiveTransform
	background []uint8
	eps        float64
}

func (w *warper) rows(start, end int) {
	ch := w.out.channels
	maxX := float64(w.in.width - 1)
	maxY := float64(w.in.height - 1)
	points := make([]float64, 2*w.out.width)
	for y := start; y < end; y++ {
		for x := 0; x < len(points); x += 2 {
			points[x] = float64(x / 2)
			points[x+1] = float64(y)
		}
		w.inv.TransformPoints(points)

		row := w.out.pix[y*w.out.stride:]
		for x := 0; x < len(points); x += 2 {
			px := row[(x/2)*ch : (x/2+1)*ch]
			sx, sy := points[x], points[x+1]
			// Negated so that NaN from points on the vanishing line counts
			// as outside.
			if !(sx >= -w.eps && sx <= maxX+w.eps && sy >= -w.eps && sy <= maxY+w.eps) {
				copy(px, w.background)
				continue
			}
			w.in.bilinear(clamp(sx, maxX), clamp(sy, maxY), px)
		}
	}
}

func clamp(v, hi float64) float64 {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
