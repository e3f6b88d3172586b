package navmesh

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"navmesh-planner/geometry"
)

// mergedLoop describes the boundary that results from removing one shared
// edge pair. Nothing in the arena changes until commit is called.
type mergedLoop struct {
	edge, twin int
	keep, drop int
	ids        []int
	vertices   []mgl64.Vec3
}

// candidateLoop collects the boundary of the two regions on either side of
// edge, skipping the edge and its twin. The second result is false when the
// edge cannot be merged across.
func (m *NavMesh) candidateLoop(edge int) (mergedLoop, bool) {
	e := m.edges[edge]
	if e.Region == none || e.Twin == none {
		return mergedLoop{}, false
	}
	t := m.edges[e.Twin]
	if t.Region == none || t.Region == e.Region {
		return mergedLoop{}, false
	}

	ml := mergedLoop{edge: edge, twin: e.Twin, keep: e.Region, drop: t.Region}
	for id := e.Next; id != edge; id = m.edges[id].Next {
		ml.ids = append(ml.ids, id)
		if len(ml.ids) > len(m.edges) {
			return mergedLoop{}, false
		}
	}
	for id := t.Next; id != e.Twin; id = m.edges[id].Next {
		ml.ids = append(ml.ids, id)
		if len(ml.ids) > len(m.edges) {
			return mergedLoop{}, false
		}
	}
	if len(ml.ids) < 3 {
		return mergedLoop{}, false
	}

	// a second shared edge would stay in the loop as a zero-width spike
	inLoop := make(map[int]bool, len(ml.ids))
	for _, id := range ml.ids {
		inLoop[id] = true
	}
	for _, id := range ml.ids {
		if twin := m.edges[id].Twin; twin != none && inLoop[twin] {
			return mergedLoop{}, false
		}
	}
	ml.vertices = m.heads(ml.ids)
	return ml, true
}

// tryMerge merges the regions on both sides of edge when the union stays
// convex and coplanar. Collinear corners count as convex. It reports whether
// the merge was committed.
func (m *NavMesh) tryMerge(edge int) bool {
	ml, ok := m.candidateLoop(edge)
	if !ok {
		return false
	}

	keep := m.regions[ml.keep]
	if !geometry.Convex(ml.vertices, true) {
		slog.Debug("navmesh: merge rejected, not convex", "keep", ml.keep, "drop", ml.drop)
		return false
	}
	if !geometry.Coplanar(ml.vertices, keep.Plane, m.EpsilonCoplanarTest) {
		slog.Debug("navmesh: merge rejected, not coplanar", "keep", ml.keep, "drop", ml.drop)
		return false
	}

	m.commit(ml)
	return true
}

// commit splices the shared edge pair out of both rings and hands every
// remaining edge of the dropped region to the kept one.
func (m *NavMesh) commit(ml mergedLoop) {
	e, t := m.edges[ml.edge], m.edges[ml.twin]
	a, b := e.Prev, e.Next
	ta, tb := t.Prev, t.Next

	m.edges[a].Next = tb
	m.edges[tb].Prev = a
	m.edges[ta].Next = b
	m.edges[b].Prev = ta

	for _, id := range ml.ids {
		m.edges[id].Region = ml.keep
	}
	m.edges[ml.edge].Region = none
	m.edges[ml.twin].Region = none

	// the merged loop starts where the dropped boundary joins in
	m.regions[ml.keep].Edge = tb
	m.regions[ml.drop] = nil
}
