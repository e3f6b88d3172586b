// Package geometry holds the planar and point tests shared by the graph,
// search and navigation mesh packages.
//
// All points are mgl64.Vec3. The walkable plane is XZ with Y pointing up, so
// 2-D orientation tests ignore the Y component.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Area returns twice the signed area of the triangle (a, b, c) projected onto
// the XZ plane. The result is positive when a, b, c are wound the way navmesh
// regions are wound (upward normal).
func Area(a, b, c mgl64.Vec3) float64 {
	return (c.X()-a.X())*(b.Z()-a.Z()) - (b.X()-a.X())*(c.Z()-a.Z())
}

// LeftOn reports whether c lies on or to the left of the directed line a->b.
func LeftOn(a, b, c mgl64.Vec3) bool {
	return Area(a, b, c) >= 0
}

// PointsEqual checks if two points are equal within tolerance.
// A tolerance of zero demands exact equality.
func PointsEqual(a, b mgl64.Vec3, tolerance float64) bool {
	if tolerance == 0 {
		return a == b
	}
	return math.Abs(a.X()-b.X()) <= tolerance &&
		math.Abs(a.Y()-b.Y()) <= tolerance &&
		math.Abs(a.Z()-b.Z()) <= tolerance
}

// SquaredDistance returns |a-b|².
func SquaredDistance(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Distance calculates Euclidean distance between two points
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// ManhattanDistance sums the absolute per-axis differences.
func ManhattanDistance(a, b mgl64.Vec3) float64 {
	return math.Abs(a.X()-b.X()) + math.Abs(a.Y()-b.Y()) + math.Abs(a.Z()-b.Z())
}

// Centroid returns the vertex average of a loop.
func Centroid(loop []mgl64.Vec3) mgl64.Vec3 {
	var c mgl64.Vec3
	if len(loop) == 0 {
		return c
	}
	for _, v := range loop {
		c = c.Add(v)
	}
	return c.Mul(1 / float64(len(loop)))
}

// Convex checks every consecutive vertex triple of the loop with the signed
// area test. With ignoreCollinear set, collinear triples are accepted;
// otherwise they count as a reflex corner.
func Convex(loop []mgl64.Vec3, ignoreCollinear bool) bool {
	n := len(loop)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a := loop[(i+n-1)%n]
		b := loop[i]
		c := loop[(i+1)%n]
		area := Area(a, b, c)
		if ignoreCollinear {
			if area < 0 {
				return false
			}
		} else if area <= 0 {
			return false
		}
	}
	return true
}

// Coplanar reports whether every vertex of the loop lies within epsilon of
// the plane.
func Coplanar(loop []mgl64.Vec3, plane Plane, epsilon float64) bool {
	for _, v := range loop {
		if math.Abs(plane.DistanceToPoint(v)) > epsilon {
			return false
		}
	}
	return true
}

// Contains tests point against a convex loop: the point must be left of or on
// every edge in XZ, and no farther than epsilon from the loop's plane.
func Contains(loop []mgl64.Vec3, plane Plane, point mgl64.Vec3, epsilon float64) bool {
	n := len(loop)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		tail := loop[(i+n-1)%n]
		head := loop[i]
		if !LeftOn(tail, head, point) {
			return false
		}
	}
	return math.Abs(plane.DistanceToPoint(point)) <= epsilon
}

// PlaneOf fits a plane through the first non-collinear vertex triple of the
// loop. ok is false when every triple is degenerate.
func PlaneOf(loop []mgl64.Vec3) (Plane, bool) {
	n := len(loop)
	for i := 0; i+2 < n; i++ {
		for j := i + 1; j+1 < n; j++ {
			for k := j + 1; k < n; k++ {
				p, ok := PlaneFromCoplanarPoints(loop[i], loop[j], loop[k])
				if ok {
					return p, true
				}
			}
		}
	}
	return Plane{}, false
}
