package navmesh

import (
	"github.com/go-gl/mathgl/mgl64"

	"navmesh-planner/geometry"
)

// Region is a convex face of the mesh. Index doubles as its node index in
// the region graph.
type Region struct {
	Index    int
	Edge     int
	Centroid mgl64.Vec3
	Plane    geometry.Plane

	contour []mgl64.Vec3
	bounds  geometry.BBox
}

// Contour returns the boundary vertices in loop order. The slice is shared;
// callers must not modify it.
func (r *Region) Contour() []mgl64.Vec3 {
	return r.contour
}

// Bounds returns the axis-aligned bounding box of the region.
func (r *Region) Bounds() geometry.BBox {
	return r.bounds
}

// Contains reports whether point lies inside the region and within epsilon
// of its plane.
func (r *Region) Contains(point mgl64.Vec3, epsilon float64) bool {
	return geometry.Contains(r.contour, r.Plane, point, epsilon)
}

// refresh recomputes the cached contour, bounds and centroid from the arena.
func (r *Region) refresh(m *NavMesh) {
	r.contour = m.heads(m.loop(r.Edge))
	r.bounds = geometry.BoundsOf(r.contour)
	r.Centroid = geometry.Centroid(r.contour)
}
