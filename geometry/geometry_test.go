package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() Polygon {
	// wound with an upward normal
	return NewPolygon(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 0, 1},
		mgl64.Vec3{1, 0, 1},
		mgl64.Vec3{1, 0, 0},
	)
}

func TestArea(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{0, 0, 1}
	c := mgl64.Vec3{1, 0, 1}

	assert.InDelta(t, 1.0, Area(a, b, c), 1e-12)
	assert.InDelta(t, -1.0, Area(a, c, b), 1e-12)
	assert.Equal(t, 0.0, Area(a, b, mgl64.Vec3{0, 5, 2}))
}

func TestPlaneFromCoplanarPoints(t *testing.T) {
	p, ok := PlaneFromCoplanarPoints(
		mgl64.Vec3{0, 2, 0},
		mgl64.Vec3{0, 2, 1},
		mgl64.Vec3{1, 2, 1},
	)
	require.True(t, ok)
	assert.InDelta(t, 1.0, p.Normal.Y(), 1e-12)
	assert.InDelta(t, -2.0, p.Constant, 1e-12)
	assert.InDelta(t, 3.0, p.DistanceToPoint(mgl64.Vec3{4, 5, 4}), 1e-12)
	assert.Equal(t, mgl64.Vec3{4, 2, 4}, p.ProjectPoint(mgl64.Vec3{4, 5, 4}))

	_, ok = PlaneFromCoplanarPoints(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{2, 0, 0})
	assert.False(t, ok, "collinear points have no plane")
}

func TestConvex(t *testing.T) {
	assert.True(t, square().Convex())
	assert.False(t, square().Reversed().Convex(), "clockwise winding is not convex")

	withCollinear := NewPolygon(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 0, 1},
		mgl64.Vec3{0.5, 0, 1},
		mgl64.Vec3{1, 0, 1},
		mgl64.Vec3{1, 0, 0},
	)
	assert.False(t, Convex(withCollinear.Vertices, false))
	assert.True(t, Convex(withCollinear.Vertices, true))

	concave := NewPolygon(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 0, 1},
		mgl64.Vec3{0.5, 0, 0.2},
		mgl64.Vec3{1, 0, 1},
		mgl64.Vec3{1, 0, 0},
	)
	assert.False(t, Convex(concave.Vertices, true))
}

func TestCoplanar(t *testing.T) {
	poly := square()
	plane, ok := poly.Plane()
	require.True(t, ok)
	assert.True(t, Coplanar(poly.Vertices, plane, 1e-3))

	poly.Vertices[2] = mgl64.Vec3{1, 0.01, 1}
	assert.False(t, Coplanar(poly.Vertices, plane, 1e-3))
	assert.True(t, Coplanar(poly.Vertices, plane, 0.1))
}

func TestContains(t *testing.T) {
	poly := square()

	tests := []struct {
		name  string
		point mgl64.Vec3
		want  bool
	}{
		{"center", mgl64.Vec3{0.5, 0, 0.5}, true},
		{"on edge", mgl64.Vec3{0, 0, 0.5}, true},
		{"corner", mgl64.Vec3{1, 0, 1}, true},
		{"outside x", mgl64.Vec3{1.5, 0, 0.5}, false},
		{"outside z", mgl64.Vec3{0.5, 0, -0.1}, false},
		{"above within epsilon", mgl64.Vec3{0.5, 0.5, 0.5}, true},
		{"above beyond epsilon", mgl64.Vec3{0.5, 2, 0.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, poly.Contains(tt.point, 1))
		})
	}
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{0.5, 0, 0.5}, square().Centroid())
	assert.Equal(t, mgl64.Vec3{}, Centroid(nil))
}

func TestSignedArea(t *testing.T) {
	assert.InDelta(t, 2.0, square().SignedArea(), 1e-12)
	assert.InDelta(t, -2.0, square().Reversed().SignedArea(), 1e-12)
}

func TestLineSegment(t *testing.T) {
	s := LineSegment{From: mgl64.Vec3{0, 0, 0}, To: mgl64.Vec3{2, 0, 0}}

	assert.Equal(t, 2.0, s.Length())
	assert.Equal(t, 4.0, s.SquaredLength())
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, s.At(0.5))
	assert.InDelta(t, 1.5, s.ClosestPointToPointParameter(mgl64.Vec3{3, 0, 1}, false), 1e-12)
	assert.InDelta(t, 1.0, s.ClosestPointToPointParameter(mgl64.Vec3{3, 0, 1}, true), 1e-12)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, s.ClosestPointToPoint(mgl64.Vec3{-1, 0, 1}))
	assert.InDelta(t, 1.0, s.DistanceSquaredToPoint(mgl64.Vec3{1, 0, 1}), 1e-12)

	degenerate := LineSegment{From: mgl64.Vec3{1, 1, 1}, To: mgl64.Vec3{1, 1, 1}}
	assert.Equal(t, 0.0, degenerate.ClosestPointToPointParameter(mgl64.Vec3{5, 5, 5}, false))
}

func TestPointsEqual(t *testing.T) {
	a := mgl64.Vec3{1, 2, 3}
	assert.True(t, PointsEqual(a, a, 0))
	assert.False(t, PointsEqual(a, mgl64.Vec3{1, 2, 3.0001}, 0))
	assert.True(t, PointsEqual(a, mgl64.Vec3{1, 2, 3.0001}, 1e-3))
}

func TestBBox(t *testing.T) {
	b := square().Bounds()
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, b.Min)
	assert.Equal(t, mgl64.Vec3{1, 0, 1}, b.Max)
	assert.True(t, b.ContainsPoint(mgl64.Vec3{0.5, 0, 0.5}))
	assert.False(t, b.ContainsPoint(mgl64.Vec3{0.5, 0.1, 0.5}))

	padded := b.Expand(0.5)
	assert.True(t, padded.ContainsPoint(mgl64.Vec3{0.5, 0.1, 0.5}))
	assert.True(t, padded.Intersects(BBox{Min: mgl64.Vec3{1.2, 0, 1.2}, Max: mgl64.Vec3{3, 0, 3}}))
	assert.False(t, b.Intersects(BBox{Min: mgl64.Vec3{1.2, 0, 1.2}, Max: mgl64.Vec3{3, 0, 3}}))

	assert.True(t, EmptyBBox().IsEmpty())
	assert.False(t, b.IsEmpty())
}
