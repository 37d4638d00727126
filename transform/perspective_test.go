package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/docwarp/geom"
)

const tolerance = 1e-6

func assertPointNear(t *testing.T, want, got geom.Point, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tolerance, msgAndArgs...)
}

var quads = []struct {
	name    string
	corners geom.Corners
}{
	{"trapezoid", geom.Corners{TL: geom.Pt(0, 0), TR: geom.Pt(100, 0), BR: geom.Pt(90, 80), BL: geom.Pt(10, 80)}},
	{"tilted", geom.Corners{TL: geom.Pt(52, 31), TR: geom.Pt(410, 74), BR: geom.Pt(388, 590), BL: geom.Pt(21, 540)}},
	{"keystone", geom.Corners{TL: geom.Pt(150, 40), TR: geom.Pt(350, 40), BR: geom.Pt(480, 600), BL: geom.Pt(20, 600)}},
	{"offset rectangle", geom.Corners{TL: geom.Pt(20, 30), TR: geom.Pt(120, 30), BR: geom.Pt(120, 80), BL: geom.Pt(20, 80)}},
	{"large", geom.Corners{TL: geom.Pt(812.5, 604.25), TR: geom.Pt(3120, 455), BR: geom.Pt(3390.75, 2870), BL: geom.Pt(640, 3010.5)}},
}

func TestSolveRectMapsCornersOntoRectangle(t *testing.T) {
	src := geom.Corners{TL: geom.Pt(0, 0), TR: geom.Pt(100, 0), BR: geom.Pt(90, 80), BL: geom.Pt(10, 80)}
	pt, err := SolveRect(src, geom.Size{Width: 100, Height: 80})
	require.NoError(t, err)

	assertPointNear(t, geom.Pt(0, 0), pt.TransformPoint(src.TL))
	assertPointNear(t, geom.Pt(99, 0), pt.TransformPoint(src.TR))
	assertPointNear(t, geom.Pt(99, 79), pt.TransformPoint(src.BR))
	assertPointNear(t, geom.Pt(0, 79), pt.TransformPoint(src.BL))
	assert.Equal(t, 1.0, pt.Matrix()[8])
}

func TestSolveRoundTrip(t *testing.T) {
	for _, tt := range quads {
		t.Run(tt.name, func(t *testing.T) {
			size, err := geom.EstimateSize(tt.corners)
			require.NoError(t, err)
			fwd, err := SolveRect(tt.corners, size)
			require.NoError(t, err)
			inv, err := fwd.Inverse()
			require.NoError(t, err)

			dst := size.Corners().Points()
			for i, p := range tt.corners.Points() {
				assertPointNear(t, dst[i], fwd.TransformPoint(p), "corner %d", i)
				assertPointNear(t, p, inv.TransformPoint(dst[i]), "corner %d", i)
			}

			c := tt.corners
			for _, u := range []float64{0.1, 0.37, 0.5, 0.81} {
				for _, v := range []float64{0.05, 0.5, 0.93} {
					p := geom.Pt(
						c.TL.X+u*(c.TR.X-c.TL.X)+v*(c.BL.X-c.TL.X),
						c.TL.Y+u*(c.TR.Y-c.TL.Y)+v*(c.BL.Y-c.TL.Y),
					)
					assertPointNear(t, p, inv.TransformPoint(fwd.TransformPoint(p)), "point %v", p)
				}
			}
		})
	}
}

func TestSolveQuadToQuad(t *testing.T) {
	src := geom.Corners{TL: geom.Pt(0, 0), TR: geom.Pt(1, 0), BR: geom.Pt(1, 1), BL: geom.Pt(0, 1)}
	dst := geom.Corners{TL: geom.Pt(10, 10), TR: geom.Pt(50, 12), BR: geom.Pt(45, 60), BL: geom.Pt(8, 55)}
	pt, err := Solve(src, dst)
	require.NoError(t, err)
	want := dst.Points()
	for i, p := range src.Points() {
		assertPointNear(t, want[i], pt.TransformPoint(p))
	}
}

func TestSolveAffineIsExact(t *testing.T) {
	src := geom.Corners{TL: geom.Pt(20, 30), TR: geom.Pt(120, 30), BR: geom.Pt(120, 80), BL: geom.Pt(20, 80)}
	pt, err := SolveRect(src, geom.Size{Width: 101, Height: 51})
	require.NoError(t, err)
	want := Translation(-20, -30).Matrix()
	got := pt.Matrix()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "element %d", i)
	}
}

func TestSolveSingular(t *testing.T) {
	tests := []struct {
		name string
		src  geom.Corners
	}{
		{"all collinear", geom.Corners{TL: geom.Pt(0, 0), TR: geom.Pt(1, 0), BR: geom.Pt(2, 0), BL: geom.Pt(3, 0)}},
		{"three collinear", geom.Corners{TL: geom.Pt(0, 0), TR: geom.Pt(10, 0), BR: geom.Pt(20, 0), BL: geom.Pt(0, 10)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, err := SolveRect(tt.src, geom.Size{Width: 10, Height: 10})
			assert.ErrorIs(t, err, ErrSingularTransform)
			assert.Nil(t, pt)
		})
	}
}

func TestSolveRectInvalidSize(t *testing.T) {
	_, err := SolveRect(quads[0].corners, geom.Size{Width: 0, Height: 10})
	assert.ErrorIs(t, err, geom.ErrInvalidInput)
}

func TestInverseSingular(t *testing.T) {
	pt := NewPerspectiveTransform([9]float64{1, 2, 3, 2, 4, 6, 0, 0, 1})
	inv, err := pt.Inverse()
	assert.ErrorIs(t, err, ErrSingularTransform)
	assert.Nil(t, inv)
}

func TestTimesComposes(t *testing.T) {
	got := Translation(1, 2).Times(Translation(3, 4))
	assert.Equal(t, Translation(4, 6).Matrix(), got.Matrix())

	inv, err := Translation(5, -7).Inverse()
	require.NoError(t, err)
	assertPointNear(t, geom.Pt(0, 0), inv.TransformPoint(geom.Pt(5, -7)))
	assertPointNear(t, geom.Pt(3, 3), Identity().TransformPoint(geom.Pt(3, 3)))
}

func TestNewPerspectiveTransformNormalizes(t *testing.T) {
	pt := NewPerspectiveTransform([9]float64{2, 0, 4, 0, 2, 6, 0, 0, 2})
	assert.Equal(t, [9]float64{1, 0, 2, 0, 1, 3, 0, 0, 1}, pt.Matrix())
}

func TestTransformPointsMatchesTransformPoint(t *testing.T) {
	pt, err := SolveRect(quads[1].corners, geom.Size{Width: 360, Height: 520})
	require.NoError(t, err)
	points := []float64{52, 31, 200, 300, 388, 590}
	pt.TransformPoints(points)
	for i, p := range []geom.Point{geom.Pt(52, 31), geom.Pt(200, 300), geom.Pt(388, 590)} {
		assertPointNear(t, pt.TransformPoint(p), geom.Pt(points[2*i], points[2*i+1]))
	}
}
