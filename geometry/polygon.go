package geometry

import "github.com/go-gl/mathgl/mgl64"

// Polygon is a closed contour of vertices in boundary order. The last vertex
// connects back to the first; the closing vertex is not repeated.
type Polygon struct {
	Vertices []mgl64.Vec3 `json:"vertices"`
}

// NewPolygon copies the given contour into a Polygon.
func NewPolygon(vertices ...mgl64.Vec3) Polygon {
	return Polygon{Vertices: append([]mgl64.Vec3(nil), vertices...)}
}

// Plane returns the supporting plane of the polygon.
func (p Polygon) Plane() (Plane, bool) {
	return PlaneOf(p.Vertices)
}

// Centroid returns the vertex average.
func (p Polygon) Centroid() mgl64.Vec3 {
	return Centroid(p.Vertices)
}

// Convex applies the strict signed-area convexity test.
func (p Polygon) Convex() bool {
	return Convex(p.Vertices, false)
}

// Contains reports whether point lies inside the polygon and within epsilon
// of its plane. The polygon must be convex.
func (p Polygon) Contains(point mgl64.Vec3, epsilon float64) bool {
	plane, ok := p.Plane()
	if !ok {
		return false
	}
	return Contains(p.Vertices, plane, point, epsilon)
}

// Bounds returns the axis-aligned bounding box of the polygon.
func (p Polygon) Bounds() BBox {
	return BoundsOf(p.Vertices)
}

// SignedArea returns twice the signed XZ area of the contour. Positive means
// the contour is wound with an upward normal.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	sum := 0.0
	origin := p.Vertices[0]
	for i := 1; i+1 < n; i++ {
		sum += Area(origin, p.Vertices[i], p.Vertices[i+1])
	}
	return sum
}

// Reversed returns the polygon with its winding flipped.
func (p Polygon) Reversed() Polygon {
	n := len(p.Vertices)
	out := make([]mgl64.Vec3, n)
	for i, v := range p.Vertices {
		out[n-1-i] = v
	}
	return Polygon{Vertices: out}
}
