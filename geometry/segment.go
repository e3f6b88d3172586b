package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LineSegment represents a line segment between two points
type LineSegment struct {
	From, To mgl64.Vec3
}

// Delta returns To - From.
func (s LineSegment) Delta() mgl64.Vec3 {
	return s.To.Sub(s.From)
}

// Length returns the Euclidean length of the segment.
func (s LineSegment) Length() float64 {
	return s.Delta().Len()
}

// SquaredLength returns the squared length of the segment.
func (s LineSegment) SquaredLength() float64 {
	d := s.Delta()
	return d.Dot(d)
}

// At returns From + t*(To-From).
func (s LineSegment) At(t float64) mgl64.Vec3 {
	return s.From.Add(s.Delta().Mul(t))
}

// ClosestPointToPointParameter projects point onto the segment's supporting
// line and returns the parameter t of the projection. With clamp set, t is
// limited to [0, 1].
func (s LineSegment) ClosestPointToPointParameter(point mgl64.Vec3, clamp bool) float64 {
	delta := s.Delta()
	lenSq := delta.Dot(delta)
	if lenSq == 0 {
		return 0
	}
	t := point.Sub(s.From).Dot(delta) / lenSq
	if clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return t
}

// ClosestPointToPoint returns the point of the segment nearest to point.
func (s LineSegment) ClosestPointToPoint(point mgl64.Vec3) mgl64.Vec3 {
	return s.At(s.ClosestPointToPointParameter(point, true))
}

// DistanceSquaredToPoint returns the squared distance from point to the
// closest point of the segment.
func (s LineSegment) DistanceSquaredToPoint(point mgl64.Vec3) float64 {
	return SquaredDistance(s.ClosestPointToPoint(point), point)
}
