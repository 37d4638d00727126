package transform

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// raster is an 8-bit interleaved view of an image's pixels. Offsets are
// relative to the image's bounds, so (0, 0) is always the first pixel.
type raster struct {
	pix      []uint8
	stride   int
	channels int
	width    int
	height   int
	model    color.Model
}

// newRaster wraps the pixel buffer of img without copying when its layout is
// directly usable, and otherwise converts img to RGBA.
func newRaster(img image.Image) *raster {
	b := img.Bounds()
	switch m := img.(type) {
	case *image.Gray:
		return &raster{pix: m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], stride: m.Stride, channels: 1,
			width: b.Dx(), height: b.Dy(), model: color.GrayModel}
	case *image.RGBA:
		return &raster{pix: m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], stride: m.Stride, channels: 4,
			width: b.Dx(), height: b.Dy(), model: color.RGBAModel}
	case *image.NRGBA:
		return &raster{pix: m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], stride: m.Stride, channels: 4,
			width: b.Dx(), height: b.Dy(), model: color.NRGBAModel}
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	return newRaster(rgba)
}

// blank allocates an image of the given size in the same pixel format as r,
// along with a raster over it.
func (r *raster) blank(width, height int) (image.Image, *raster) {
	rect := image.Rect(0, 0, width, height)
	var img image.Image
	var pix []uint8
	var stride int
	switch r.model {
	case color.GrayModel:
		m := image.NewGray(rect)
		img, pix, stride = m, m.Pix, m.Stride
	case color.NRGBAModel:
		m := image.NewNRGBA(rect)
		img, pix, stride = m, m.Pix, m.Stride
	default:
		m := image.NewRGBA(rect)
		img, pix, stride = m, m.Pix, m.Stride
	}
	return img, &raster{pix: pix, stride: stride, channels: r.channels,
		width: width, height: height, model: r.model}
}

// encode converts c into the channel bytes of r's pixel format.
func (r *raster) encode(c color.Color) []uint8 {
	switch v := r.model.Convert(c).(type) {
	case color.Gray:
		return []uint8{v.Y}
	case color.NRGBA:
		return []uint8{v.R, v.G, v.B, v.A}
	case color.RGBA:
		return []uint8{v.R, v.G, v.B, v.A}
	}
	return make([]uint8, r.channels)
}

// bilinear writes into out the value at (x, y), interpolated from the four
// surrounding pixels. x and y must already lie within [0, width-1] and
// [0, height-1].
func (r *raster) bilinear(x, y float64, out []uint8) {
	x0, y0 := int(x), int(y)
	x1, y1 := x0+1, y0+1
	if x1 >= r.width {
		x1 = r.width - 1
	}
	if y1 >= r.height {
		y1 = r.height - 1
	}
	fx := x - float64(x0)
	fy := y - float64(y0)

	ch := r.channels
	p00 := y0*r.stride + x0*ch
	p10 := y0*r.stride + x1*ch
	p01 := y1*r.stride + x0*ch
	p11 := y1*r.stride + x1*ch
	for c := 0; c < ch; c++ {
		top := lerp(float64(r.pix[p00+c]), float64(r.pix[p10+c]), fx)
		bottom := lerp(float64(r.pix[p01+c]), float64(r.pix[p11+c]), fx)
		out[c] = uint8(lerp(top, bottom, fy) + 0.5)
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
