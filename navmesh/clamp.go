package navmesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ClampMovement restricts a move from start to end to the mesh.
//
// If end lies in a region, that region and end are returned unchanged.
// Otherwise the move slides along the border edge of current closest to
// start. When the slid position falls outside that edge's extent and off the
// mesh, the move is cancelled and start is returned.
//
// current must be non-nil whenever end is off the mesh; ClampMovement panics
// otherwise.
func (m *NavMesh) ClampMovement(current *Region, start, end mgl64.Vec3) (*Region, mgl64.Vec3) {
	if r := m.RegionForPoint(end, m.EpsilonContainsTest); r != nil {
		return r, end
	}
	if current == nil {
		panic("navmesh: ClampMovement needs a current region to clamp against")
	}

	border := m.closestBorderEdge(current, start)
	if border == none {
		return current, start
	}

	movement := end.Sub(start)
	length := movement.Len()
	if length == 0 {
		return current, start
	}

	segment := m.segment(border)
	edgeLen := segment.Length()
	if edgeLen == 0 {
		return current, start
	}
	edgeDir := segment.Delta().Mul(1 / edgeLen)

	f := edgeDir.Dot(movement.Mul(1 / length))
	slid := start.Add(edgeDir.Mul(f * length))

	t := segment.ClosestPointToPointParameter(slid, false)
	if t >= 0 && t <= 1 {
		if r := m.RegionForPoint(slid, m.EpsilonContainsTest); r != nil && r != current {
			return r, slid
		}
		return current, slid
	}

	if r := m.RegionForPoint(slid, m.EpsilonContainsTest); r != nil {
		return r, slid
	}
	return current, start
}

// closestBorderEdge returns the untwinned edge of r nearest to point, or -1
// when r has no border.
func (m *NavMesh) closestBorderEdge(r *Region, point mgl64.Vec3) int {
	closest := none
	best := math.Inf(1)
	for _, id := range m.loop(r.Edge) {
		if m.edges[id].Twin != none {
			continue
		}
		d := m.segment(id).DistanceSquaredToPoint(point)
		if d < best {
			best = d
			closest = id
		}
	}
	return closest
}
