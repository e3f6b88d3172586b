package navmesh

import (
	"github.com/go-gl/mathgl/mgl64"

	"navmesh-planner/geometry"
)

// none marks an absent arena reference.
const none = -1

// HalfEdge is one directed boundary segment of a region. It runs from the
// Vertex of its Prev edge (tail) to its own Vertex (head).
//
// Next, Prev and Twin are indices into the owning NavMesh's half-edge arena;
// Twin is -1 on the mesh border. Region is the index of the owning region
// and NodeIndex the unified id of the vertex the edge originates from (-1
// for border edges).
type HalfEdge struct {
	Vertex    mgl64.Vec3
	Next      int
	Prev      int
	Twin      int
	Region    int
	NodeIndex int
}

// HasTwin reports whether the edge is shared with a neighbouring region.
func (e HalfEdge) HasTwin() bool {
	return e.Twin != none
}

func (m *NavMesh) head(i int) mgl64.Vec3 {
	return m.edges[i].Vertex
}

func (m *NavMesh) tail(i int) mgl64.Vec3 {
	return m.edges[m.edges[i].Prev].Vertex
}

func (m *NavMesh) segment(i int) geometry.LineSegment {
	return geometry.LineSegment{From: m.tail(i), To: m.head(i)}
}

// loop returns the arena indices of the boundary loop that starts at first.
// The walk stops after len(arena) steps so a corrupted ring cannot hang.
func (m *NavMesh) loop(first int) []int {
	var ids []int
	e := first
	for steps := 0; steps <= len(m.edges); steps++ {
		ids = append(ids, e)
		e = m.edges[e].Next
		if e == first {
			return ids
		}
	}
	return ids
}

// heads maps edge ids onto their head vertices.
func (m *NavMesh) heads(ids []int) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(ids))
	for i, id := range ids {
		out[i] = m.edges[id].Vertex
	}
	return out
}

// HalfEdge returns the arena entry i.
func (m *NavMesh) HalfEdge(i int) (HalfEdge, bool) {
	if i < 0 || i >= len(m.edges) {
		return HalfEdge{}, false
	}
	return m.edges[i], true
}

// HalfEdgeCount returns the size of the half-edge arena.
func (m *NavMesh) HalfEdgeCount() int {
	return len(m.edges)
}
