package geometry

import "github.com/go-gl/mathgl/mgl64"

// Plane is the set of points p with Normal·p + Constant = 0.
type Plane struct {
	Normal   mgl64.Vec3
	Constant float64
}

// degenerateNormal is the squared length below which three points are treated
// as collinear.
const degenerateNormal = 1e-18

// PlaneFromCoplanarPoints builds the plane through a, b and c. For a loop
// wound with positive Area the normal points up (+Y).
func PlaneFromCoplanarPoints(a, b, c mgl64.Vec3) (Plane, bool) {
	normal := c.Sub(b).Cross(a.Sub(b))
	if normal.Dot(normal) < degenerateNormal {
		return Plane{}, false
	}
	normal = normal.Normalize()
	return Plane{Normal: normal, Constant: -normal.Dot(a)}, true
}

// DistanceToPoint returns the signed distance from the plane to p.
func (p Plane) DistanceToPoint(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) + p.Constant
}

// ProjectPoint returns the orthogonal projection of point onto the plane.
func (p Plane) ProjectPoint(point mgl64.Vec3) mgl64.Vec3 {
	return point.Sub(p.Normal.Mul(p.DistanceToPoint(point)))
}
